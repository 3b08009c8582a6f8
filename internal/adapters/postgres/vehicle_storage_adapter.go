package postgres

import (
	"context"
	"errors"
	"fmt"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Единый список колонок: порядок обязан совпадать со scanVehicle.
const vehicleColumns = `v.vehicle_id, v.title, v.brand, v.model, v.year, v.price, v.price_amount,
	v.mileage, v.mileage_km, v.fuel_type, v.transmission, v.body_type, v.color, v.seats,
	v.origin, v.location, v.description, v.image_url, v.seller_name, v.seller_phone,
	v.posted_at, v.source_url`

// PostgresVehicleStorageAdapter реализует VehicleStoragePort для PostgreSQL.
type PostgresVehicleStorageAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresVehicleStorageAdapter создает новый экземпляр адаптера.
func NewPostgresVehicleStorageAdapter(pool *pgxpool.Pool) (*PostgresVehicleStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresVehicleStorageAdapter{
		pool: pool,
	}, nil
}

// scanVehicle читает одну строку выборки в доменную структуру.
func scanVehicle(row pgx.Row) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID, &v.Title, &v.Brand, &v.Model, &v.Year, &v.Price, &v.PriceAmount,
		&v.Mileage, &v.MileageKm, &v.FuelType, &v.Transmission, &v.BodyType, &v.Color, &v.Seats,
		&v.Origin, &v.Location, &v.Description, &v.ImageURL, &v.SellerName, &v.SellerPhone,
		&v.PostedAt, &v.SourceURL,
	)
	return v, err
}

// GetByID возвращает одно объявление или domain.ErrVehicleNotFound.
func (a *PostgresVehicleStorageAdapter) GetByID(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresVehicleStorageAdapter",
		"method":     "GetByID",
		"vehicle_id": vehicleID,
	})

	query := fmt.Sprintf("SELECT %s FROM vehicles v WHERE v.vehicle_id = $1", vehicleColumns)

	vehicle, err := scanVehicle(a.pool.QueryRow(ctx, query, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Vehicle not found.", nil)
			return nil, domain.ErrVehicleNotFound
		}
		repoLogger.Error("Failed to query vehicle by id", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query vehicle by id: %w", err)
	}

	return &vehicle, nil
}

// DeleteByID удаляет объявление из каталога (модерация).
// Закладки в избранном исчезают каскадно вместе с ним.
func (a *PostgresVehicleStorageAdapter) DeleteByID(ctx context.Context, vehicleID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresVehicleStorageAdapter",
		"method":     "DeleteByID",
		"vehicle_id": vehicleID,
	})

	query := "DELETE FROM vehicles WHERE vehicle_id = $1"

	cmdTag, err := a.pool.Exec(ctx, query, vehicleID)
	if err != nil {
		repoLogger.Error("Failed to delete vehicle", err, port.Fields{"query": query})
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Debug("Vehicle not found, nothing to delete.", nil)
		return domain.ErrVehicleNotFound
	}

	repoLogger.Info("Vehicle deleted.", nil)
	return nil
}

// GetLatest возвращает свежие объявления, сначала с самой поздней датой публикации.
// Объявления без даты оказываются в хвосте.
func (a *PostgresVehicleStorageAdapter) GetLatest(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresVehicleStorageAdapter",
		"method":    "GetLatest",
		"limit":     limit,
		"offset":    offset,
	})

	query := fmt.Sprintf(
		"SELECT %s FROM vehicles v ORDER BY v.posted_at DESC NULLS LAST, v.vehicle_id DESC LIMIT $1 OFFSET $2",
		vehicleColumns,
	)

	rows, err := a.pool.Query(ctx, query, limit, offset)
	if err != nil {
		repoLogger.Error("Failed to query latest vehicles", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query latest vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, limit)
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

	repoLogger.Debug("Successfully fetched latest vehicles.", port.Fields{"count": len(vehicles)})
	return vehicles, nil
}
