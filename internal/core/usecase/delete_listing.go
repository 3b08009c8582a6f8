package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

type DeleteListingUseCase struct {
	storage port.VehicleStoragePort
}

func NewDeleteListingUseCase(storage port.VehicleStoragePort) *DeleteListingUseCase {
	return &DeleteListingUseCase{storage: storage}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, vehicleID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"vehicle_id": vehicleID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.storage.DeleteByID(ctx, vehicleID); err != nil {
		if err == domain.ErrVehicleNotFound {
			ucLogger.Warn("Vehicle not found", nil)
			return err
		}
		ucLogger.Error("Storage returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
