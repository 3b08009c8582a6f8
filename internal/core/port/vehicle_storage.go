package port

import (
	"context"

	"car-market-service/internal/core/domain"
)

// VehicleStoragePort - контракт хранилища объявлений.
type VehicleStoragePort interface {
	// Search возвращает одну страницу каталога по фильтрам и сортировке.
	Search(ctx context.Context, filters domain.SearchFilters, sort domain.SortSpec, page, pageSize int) (*domain.SearchResult, error)

	// FindSimilar подбирает до limit объявлений, похожих на указанное.
	// Возвращает domain.ErrVehicleNotFound, если опорного объявления нет.
	FindSimilar(ctx context.Context, vehicleID int64, limit int) ([]domain.Vehicle, error)

	GetByID(ctx context.Context, vehicleID int64) (*domain.Vehicle, error)
	GetLatest(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)

	// DeleteByID убирает объявление из каталога (модерация).
	// Возвращает domain.ErrVehicleNotFound, если объявления нет.
	DeleteByID(ctx context.Context, vehicleID int64) error

	// BatchSave сохраняет пачку объявлений из шины (insert или update по vehicle_id).
	BatchSave(ctx context.Context, vehicles []domain.Vehicle) (*domain.BatchSaveStats, error)
}
