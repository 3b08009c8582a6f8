package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type RemoveFromFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, vehicleID int64) error
}
