package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, tokenString string) (*domain.Claims, error) // Возвращает claims, если токен валиден
}
