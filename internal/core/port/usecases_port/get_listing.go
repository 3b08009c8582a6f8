package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type GetListingUseCasePort interface {
	Execute(ctx context.Context, vehicleID int64) (*domain.Vehicle, error)
}
