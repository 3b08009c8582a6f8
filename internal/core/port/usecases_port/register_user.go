package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error) // Возвращает пользователя и JWT токен
}
