package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetUserProfileUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
