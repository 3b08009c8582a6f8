package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type SearchVehiclesUseCasePort interface {
	Execute(ctx context.Context, filters domain.SearchFilters, sort domain.SortSpec, page, pageSize int) (*domain.SearchResult, error)
}
