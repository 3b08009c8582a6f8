package usecase

import (
	"context"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
)

type RecordInteractionUseCase struct {
	repo     port.InteractionRepositoryPort
	reporter port.InteractionReporterPort
}

func NewRecordInteractionUseCase(repo port.InteractionRepositoryPort, reporter port.InteractionReporterPort) *RecordInteractionUseCase {
	return &RecordInteractionUseCase{repo: repo, reporter: reporter}
}

func (uc *RecordInteractionUseCase) Execute(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":         "RecordInteraction",
		"user_id":          interaction.UserID.String(),
		"vehicle_id":       interaction.VehicleID,
		"interaction_type": interaction.Type,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Save(ctx, interaction); err != nil {
		ucLogger.Error("Repository failed to save interaction", err, nil)
		return nil, err
	}

	// Публикация в шину не должна ломать запрос: событие уже сохранено,
	// аналитика доберет его при следующей выгрузке.
	if err := uc.reporter.ReportInteraction(ctx, interaction); err != nil {
		ucLogger.Warn("Failed to publish interaction event", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"interaction_id": interaction.ID.String(),
	})

	return interaction, nil
}
