package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"

	"github.com/google/uuid"
)

type GetUserFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewGetUserFavoritesUseCase(repo port.FavoritesRepositoryPort) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{repo: repo}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedVehicles, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserFavorites",
		"user_id":  userID.String(),
		"limit":    limit,
		"offset":   offset,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.repo.FindPaginatedByUser(ctx, userID, limit, offset)
	if err != nil {
		ucLogger.Error("Repository failed to fetch favorites", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Vehicles),
	})

	return result, nil
}
