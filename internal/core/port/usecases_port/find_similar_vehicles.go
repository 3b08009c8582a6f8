package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type FindSimilarVehiclesUseCasePort interface {
	Execute(ctx context.Context, vehicleID int64, limit int) ([]domain.Vehicle, error)
}
