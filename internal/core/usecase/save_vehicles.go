package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

type SaveVehiclesUseCase struct {
	storage port.VehicleStoragePort
}

func NewSaveVehiclesUseCase(storage port.VehicleStoragePort) *SaveVehiclesUseCase {
	return &SaveVehiclesUseCase{storage: storage}
}

func (uc *SaveVehiclesUseCase) Execute(ctx context.Context, vehicles []domain.Vehicle) (*domain.BatchSaveStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "SaveVehicles",
		"batch_size": len(vehicles),
	})

	ucLogger.Info("Use case started", nil)

	stats, err := uc.storage.BatchSave(ctx, vehicles)
	if err != nil {
		ucLogger.Error("Storage failed to save batch", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"created": stats.Created,
		"updated": stats.Updated,
	})

	return stats, nil
}
