package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetUserFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedVehicles, error)
}
