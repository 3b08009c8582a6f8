package postgres

import (
	"context"
	"fmt"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InteractionRepository - реализация InteractionRepositoryPort для PostgreSQL.
type InteractionRepository struct {
	pool *pgxpool.Pool
}

func NewInteractionRepository(pool *pgxpool.Pool) (*InteractionRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &InteractionRepository{pool: pool}, nil
}

// Save сохраняет событие взаимодействия. Metadata пишется в jsonb-колонку.
func (r *InteractionRepository) Save(ctx context.Context, interaction *domain.Interaction) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "InteractionRepository",
		"method":         "Save",
		"interaction_id": interaction.ID.String(),
	})

	query := `
		INSERT INTO user_interactions (id, user_id, vehicle_id, interaction_type, score, session_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		interaction.ID, interaction.UserID, interaction.VehicleID, interaction.Type,
		interaction.Score, interaction.SessionID, interaction.Metadata, interaction.CreatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to save interaction", err, port.Fields{"query": query})
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	repoLogger.Debug("Interaction saved.", nil)
	return nil
}
