package port

import (
	"context"

	"car-market-service/internal/core/domain"
)

// InteractionRepositoryPort - хранилище событий обратной связи.
type InteractionRepositoryPort interface {
	Save(ctx context.Context, interaction *domain.Interaction) error
}

// InteractionReporterPort публикует событие взаимодействия в шину
// для офлайн-обработки (пересчет рекомендаций и т.п.).
type InteractionReporterPort interface {
	ReportInteraction(ctx context.Context, interaction *domain.Interaction) error
}
