package postgres

import (
	"context"
	"errors"
	"fmt"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoritesRepository - реализация FavoritesRepositoryPort для PostgreSQL.
type FavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewFavoritesRepository(pool *pgxpool.Pool) (*FavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &FavoritesRepository{pool: pool}, nil
}

// Add добавляет запись в user_favorites.
func (r *FavoritesRepository) Add(ctx context.Context, userID uuid.UUID, vehicleID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "FavoritesRepository",
		"method":     "Add",
		"user_id":    userID,
		"vehicle_id": vehicleID,
	})

	query := `INSERT INTO user_favorites (user_id, vehicle_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, userID, vehicleID)
	if err != nil {
		// Нарушение unique constraint (PRIMARY KEY) означает, что запись
		// уже существует. В данном случае это не ошибка.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 - unique_violation
			repoLogger.Warn("Favorite already exists, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Debug("Successfully added to favorites.", nil)
	return nil
}

// Remove удаляет запись из user_favorites.
func (r *FavoritesRepository) Remove(ctx context.Context, userID uuid.UUID, vehicleID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "FavoritesRepository",
		"method":     "Remove",
		"user_id":    userID,
		"vehicle_id": vehicleID,
	})

	query := `DELETE FROM user_favorites WHERE user_id = $1 AND vehicle_id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, userID, vehicleID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a favorite that did not exist.", nil)
	} else {
		repoLogger.Debug("Successfully removed from favorites.", nil)
	}
	return nil
}

// FindPaginatedByUser возвращает страницу избранных объявлений пользователя,
// свежедобавленные первыми. Счетчик и страница читаются в одной транзакции.
func (r *FavoritesRepository) FindPaginatedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedVehicles, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FavoritesRepository",
		"method":    "FindPaginatedByUser",
		"user_id":   userID,
		"limit":     limit,
		"offset":    offset,
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. Запрос на общее количество
	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM user_favorites WHERE user_id = $1`
	if err := tx.QueryRow(ctx, countQuery, userID).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count favorites", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	// Если избранных нет, сразу возвращаем результат
	if totalCount == 0 {
		return &domain.PaginatedVehicles{
			Vehicles:     []domain.Vehicle{},
			TotalCount:   0,
			CurrentPage:  offset/limit + 1,
			ItemsPerPage: limit,
		}, nil
	}

	// 2. Запрос на страницу объявлений. Объявление могло уже исчезнуть из
	// каталога - JOIN молча отбрасывает осиротевшие закладки.
	dataQuery := fmt.Sprintf(`
		SELECT %s FROM user_favorites f
		JOIN vehicles v ON v.vehicle_id = f.vehicle_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`, vehicleColumns)

	rows, err := tx.Query(ctx, dataQuery, userID, limit, offset)
	if err != nil {
		repoLogger.Error("Failed to query favorite vehicles", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query favorite vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, limit)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			repoLogger.Error("Failed to scan favorite vehicle row", err, nil)
			return nil, fmt.Errorf("failed to scan favorite vehicle: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during favorites iteration", err, nil)
		return nil, fmt.Errorf("error during favorites iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Successfully found paginated favorites.", port.Fields{"found_on_page": len(vehicles)})
	return &domain.PaginatedVehicles{
		Vehicles:     vehicles,
		TotalCount:   int(totalCount),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}
