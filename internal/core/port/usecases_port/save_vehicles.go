package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type SaveVehiclesUseCasePort interface {
	Execute(ctx context.Context, vehicles []domain.Vehicle) (*domain.BatchSaveStats, error)
}
