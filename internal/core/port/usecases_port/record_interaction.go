package usecases_port

import (
	"context"

	"car-market-service/internal/core/domain"
)

type RecordInteractionUseCasePort interface {
	Execute(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error)
}
