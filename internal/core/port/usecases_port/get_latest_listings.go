package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type GetLatestListingsUseCasePort interface {
	// Возвращает свежие объявления, отсортированные по дате публикации.
	Execute(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
}
