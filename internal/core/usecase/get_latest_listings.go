package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

type GetLatestListingsUseCase struct {
	storage port.VehicleStoragePort
}

func NewGetLatestListingsUseCase(storage port.VehicleStoragePort) *GetLatestListingsUseCase {
	return &GetLatestListingsUseCase{storage: storage}
}

func (uc *GetLatestListingsUseCase) Execute(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetLatestListings",
		"limit":    limit,
		"offset":   offset,
	})

	ucLogger.Info("Use case started", nil)

	vehicles, err := uc.storage.GetLatest(ctx, limit, offset)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"items_found": len(vehicles),
	})

	return vehicles, nil
}
