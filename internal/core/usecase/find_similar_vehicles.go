package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

type FindSimilarVehiclesUseCase struct {
	storage port.VehicleStoragePort
}

func NewFindSimilarVehiclesUseCase(storage port.VehicleStoragePort) *FindSimilarVehiclesUseCase {
	return &FindSimilarVehiclesUseCase{storage: storage}
}

func (uc *FindSimilarVehiclesUseCase) Execute(ctx context.Context, vehicleID int64, limit int) ([]domain.Vehicle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "FindSimilarVehicles",
		"vehicle_id": vehicleID,
		"limit":      limit,
	})

	ucLogger.Info("Use case started", nil)

	similar, err := uc.storage.FindSimilar(ctx, vehicleID, limit)
	if err != nil {
		// Отсутствие опорного объявления - штатная ситуация, не пишем как ошибку
		if err == domain.ErrVehicleNotFound {
			ucLogger.Warn("Reference vehicle not found", nil)
			return nil, err
		}
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"similar_found": len(similar),
	})

	return similar, nil
}
