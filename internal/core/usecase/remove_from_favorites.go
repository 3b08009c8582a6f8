package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/port"

	"github.com/google/uuid"
)

type RemoveFromFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewRemoveFromFavoritesUseCase(repo port.FavoritesRepositoryPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{repo: repo}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, vehicleID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RemoveFromFavorites",
		"user_id":    userID.String(),
		"vehicle_id": vehicleID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Remove(ctx, userID, vehicleID); err != nil {
		ucLogger.Error("Repository failed to remove favorite", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
