package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/port"

	"github.com/google/uuid"
)

type AddToFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewAddToFavoritesUseCase(repo port.FavoritesRepositoryPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{repo: repo}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, vehicleID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "AddToFavorites",
		"user_id":    userID.String(),
		"vehicle_id": vehicleID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Add(ctx, userID, vehicleID); err != nil {
		ucLogger.Error("Repository failed to add favorite", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
