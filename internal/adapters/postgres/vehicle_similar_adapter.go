package postgres

import (
	"context"
	"fmt"
	"strings"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

// Ценовой коридор похожих объявлений: +/-30% от цены опорного.
const (
	similarPriceLowerRatio = 0.7
	similarPriceUpperRatio = 1.3
)

// referencePrice достает цену опорного объявления для ценового коридора.
// Нормализованная колонка в приоритете, иначе цифры выжимаются из сырой строки.
func referencePrice(v *domain.Vehicle) *int64 {
	if v.PriceAmount != nil {
		return v.PriceAmount
	}
	return domain.NormalizeNumeric(v.Price)
}

// similarityFilter собирает WHERE-условия подбора похожих объявлений:
// исключение самого опорного, марка - точное совпадение (не подстрока),
// цена - включительно в коридоре +/-30%. Правила применяются только
// к атрибутам, которые у опорного объявления заполнены.
// Возвращает клаузу, аргументы и номер следующего плейсхолдера.
func similarityFilter(reference *domain.Vehicle) (string, []interface{}, int) {
	qb := newQueryBuilder()
	qb.addCondition("%s <> $%d", "v.vehicle_id", reference.ID)

	if reference.Brand != nil && *reference.Brand != "" {
		qb.addCondition("%s = $%d", "v.brand", *reference.Brand)
	}

	if price := referencePrice(reference); price != nil && *price > 0 {
		condition := fmt.Sprintf(
			"%s BETWEEN $%d AND $%d",
			numericExpr("v.price_amount", "v.price"), qb.argId, qb.argId+1,
		)
		qb.conditions = append(qb.conditions, condition)
		qb.args = append(qb.args,
			similarPriceLowerRatio*float64(*price),
			similarPriceUpperRatio*float64(*price),
		)
		qb.argId += 2
	}

	return strings.Join(qb.conditions, " AND "), qb.args, qb.argId
}

// FindSimilar подбирает объявления, похожие на указанное.
func (a *PostgresVehicleStorageAdapter) FindSimilar(ctx context.Context, vehicleID int64, limit int) ([]domain.Vehicle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresVehicleStorageAdapter",
		"method":     "FindSimilar",
		"vehicle_id": vehicleID,
		"limit":      limit,
	})

	// Сначала опорное объявление: его отсутствие - ErrVehicleNotFound
	reference, err := a.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if price := referencePrice(reference); price == nil || *price <= 0 {
		repoLogger.Debug("Reference vehicle has no usable price, matching by brand only.", nil)
	}

	whereClause, args, limitArg := similarityFilter(reference)
	query := fmt.Sprintf(
		"SELECT %s FROM vehicles v WHERE %s ORDER BY v.vehicle_id ASC LIMIT $%d",
		vehicleColumns, whereClause, limitArg,
	)
	queryArgs := append(args, limit)

	rows, err := a.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		repoLogger.Error("Failed to query similar vehicles", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query similar vehicles: %w", err)
	}
	defer rows.Close()

	similar := make([]domain.Vehicle, 0, limit)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		similar = append(similar, vehicle)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during similar vehicles iteration", err, nil)
		return nil, fmt.Errorf("error during similar vehicles iteration: %w", err)
	}

	repoLogger.Info("Similar vehicles found", port.Fields{"count": len(similar)})
	return similar, nil
}
