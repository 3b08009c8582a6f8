package port

import (
	"context"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
)

// FavoritesRepositoryPort - контракт для адаптера, работающего с БД избранного.
type FavoritesRepositoryPort interface {
	// Add идемпотентен: повторное добавление того же объявления не ошибка.
	Add(ctx context.Context, userID uuid.UUID, vehicleID int64) error
	Remove(ctx context.Context, userID uuid.UUID, vehicleID int64) error
	// FindPaginatedByUser возвращает страницу избранных объявлений,
	// свежедобавленные первыми.
	FindPaginatedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedVehicles, error)
}
