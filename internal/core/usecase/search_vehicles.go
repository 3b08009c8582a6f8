package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

type SearchVehiclesUseCase struct {
	storage port.VehicleStoragePort
}

func NewSearchVehiclesUseCase(storage port.VehicleStoragePort) *SearchVehiclesUseCase {
	return &SearchVehiclesUseCase{storage: storage}
}

func (uc *SearchVehiclesUseCase) Execute(ctx context.Context, filters domain.SearchFilters, sort domain.SortSpec, page, pageSize int) (*domain.SearchResult, error) {
	// Получаем и обогащаем логгер
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "SearchVehicles",
		"filters":   filters,
		"sort":      sort,
		"page":      page,
		"page_size": pageSize,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.storage.Search(ctx, filters, sort, page, pageSize)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err // Просто пробрасываем ошибку дальше
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Vehicles),
	})

	return result, nil
}
