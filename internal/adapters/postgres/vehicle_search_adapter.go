package postgres

import (
	"context"
	"fmt"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

// Search ищет объявления по набору фильтров с сортировкой и пагинацией
func (a *PostgresVehicleStorageAdapter) Search(ctx context.Context, filters domain.SearchFilters, sort domain.SortSpec, page, pageSize int) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresVehicleStorageAdapter",
		"method":    "Search",
		"page":      page,
		"page_size": pageSize,
	})

	// Получаем части запроса от билдера
	whereClause, args := applyFilters(filters)

	// Выполняем два запроса (один для COUNT, другой для данных) в транзакции,
	// чтобы счетчик и страница были согласованы между собой
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM vehicles v %s", whereClause)
	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count vehicles with filters", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count vehicles with filters: %w", err)
	}

	repoLogger.Info("Total vehicles found", port.Fields{"total_count": totalCount})

	// Если ничего не найдено, нет смысла делать второй запрос
	if totalCount == 0 {
		return &domain.SearchResult{
			Vehicles:   []domain.Vehicle{},
			TotalCount: 0,
			Page:       page,
			PageSize:   pageSize,
		}, nil
	}

	offset := (page - 1) * pageSize
	dataQuery := fmt.Sprintf(
		"SELECT %s FROM vehicles v %s %s LIMIT $%d OFFSET $%d",
		vehicleColumns, whereClause, resolveSort(sort), len(args)+1, len(args)+2,
	)
	limitOffsetArgs := append(args, pageSize, offset)

	rows, err := tx.Query(ctx, dataQuery, limitOffsetArgs...)
	if err != nil {
		repoLogger.Error("Failed to find vehicles with filters", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to find vehicles with filters: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, pageSize)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during vehicles iteration", err, nil)
		return nil, fmt.Errorf("error during vehicles iteration: %w", err)
	}

	repoLogger.Info("Successfully found vehicles for page", port.Fields{"count": len(vehicles)})

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.SearchResult{
		Vehicles:   vehicles,
		TotalCount: int(totalCount),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
