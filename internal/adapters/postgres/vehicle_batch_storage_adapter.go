package postgres

import (
	"context"
	"fmt"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"

	"github.com/jackc/pgx/v5"
)

const upsertVehicleSQL = `
	INSERT INTO vehicles (
		vehicle_id, title, brand, model, year, price, price_amount,
		mileage, mileage_km, fuel_type, transmission, body_type, color, seats,
		origin, location, description, image_url, seller_name, seller_phone,
		posted_at, source_url
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
	)
	ON CONFLICT (vehicle_id) DO UPDATE SET
		title = EXCLUDED.title,
		brand = EXCLUDED.brand,
		model = EXCLUDED.model,
		year = EXCLUDED.year,
		price = EXCLUDED.price,
		price_amount = EXCLUDED.price_amount,
		mileage = EXCLUDED.mileage,
		mileage_km = EXCLUDED.mileage_km,
		fuel_type = EXCLUDED.fuel_type,
		transmission = EXCLUDED.transmission,
		body_type = EXCLUDED.body_type,
		color = EXCLUDED.color,
		seats = EXCLUDED.seats,
		origin = EXCLUDED.origin,
		location = EXCLUDED.location,
		description = EXCLUDED.description,
		image_url = EXCLUDED.image_url,
		seller_name = EXCLUDED.seller_name,
		seller_phone = EXCLUDED.seller_phone,
		posted_at = EXCLUDED.posted_at,
		source_url = EXCLUDED.source_url,
		updated_at = NOW()
	RETURNING (xmax = 0) AS inserted`

// BatchSave сохраняет пачку объявлений одной транзакцией.
// Конфликт по vehicle_id означает повторную выгрузку того же объявления -
// запись обновляется. xmax = 0 отличает вставку от обновления.
func (a *PostgresVehicleStorageAdapter) BatchSave(ctx context.Context, vehicles []domain.Vehicle) (*domain.BatchSaveStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresVehicleStorageAdapter",
		"method":     "BatchSave",
		"batch_size": len(vehicles),
	})

	if len(vehicles) == 0 {
		return &domain.BatchSaveStats{}, nil
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, v := range vehicles {
		batch.Queue(upsertVehicleSQL,
			v.ID, v.Title, v.Brand, v.Model, v.Year, v.Price, v.PriceAmount,
			v.Mileage, v.MileageKm, v.FuelType, v.Transmission, v.BodyType, v.Color, v.Seats,
			v.Origin, v.Location, v.Description, v.ImageURL, v.SellerName, v.SellerPhone,
			v.PostedAt, v.SourceURL,
		)
	}

	results := tx.SendBatch(ctx, batch)

	stats := &domain.BatchSaveStats{}
	for i := range vehicles {
		var inserted bool
		if err := results.QueryRow().Scan(&inserted); err != nil {
			results.Close()
			repoLogger.Error("Failed to upsert vehicle", err, port.Fields{"vehicle_id": vehicles[i].ID})
			return nil, fmt.Errorf("failed to upsert vehicle %d: %w", vehicles[i].ID, err)
		}
		if inserted {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Info("Batch saved", port.Fields{"created": stats.Created, "updated": stats.Updated})
	return stats, nil
}
