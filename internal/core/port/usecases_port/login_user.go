package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error) // Возвращает JWT токен
}
