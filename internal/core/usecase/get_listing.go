package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

type GetListingUseCase struct {
	storage port.VehicleStoragePort
}

func NewGetListingUseCase(storage port.VehicleStoragePort) *GetListingUseCase {
	return &GetListingUseCase{storage: storage}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListing",
		"vehicle_id": vehicleID,
	})

	ucLogger.Info("Use case started", nil)

	vehicle, err := uc.storage.GetByID(ctx, vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			ucLogger.Warn("Vehicle not found", nil)
			return nil, err
		}
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return vehicle, nil
}
