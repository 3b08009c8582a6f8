package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
	"car-market-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// InteractionEventDTO - для сообщения о взаимодействии пользователя с объявлением.
type InteractionEventDTO struct {
	InteractionID   uuid.UUID              `json:"interaction_id"`
	UserID          uuid.UUID              `json:"user_id"`
	VehicleID       int64                  `json:"vehicle_id"`
	InteractionType string                 `json:"interaction_type"`
	Score           *float64               `json:"score,omitempty"`
	SessionID       *string                `json:"session_id,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

type InteractionReporterAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewInteractionReporterAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*InteractionReporterAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &InteractionReporterAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *InteractionReporterAdapter) ReportInteraction(ctx context.Context, interaction *domain.Interaction) error {
	// Извлекаем и обогащаем логгер
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":      "InteractionReporterAdapter",
		"routing_key":    a.routingKey,
		"interaction_id": interaction.ID.String(),
	})

	dto := InteractionEventDTO{
		InteractionID:   interaction.ID,
		UserID:          interaction.UserID,
		VehicleID:       interaction.VehicleID,
		InteractionType: interaction.Type,
		Score:           interaction.Score,
		SessionID:       interaction.SessionID,
		Metadata:        interaction.Metadata,
		CreatedAt:       interaction.CreatedAt,
	}

	body, _ := json.Marshal(dto)

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// Устанавливаем таймаут на операцию публикации, если контекст его не предоставляет
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	adapterLogger.Info("Publishing interaction event", port.Fields{"interaction_type": interaction.Type})
	err := a.producer.Publish(publishCtx, a.routingKey, msg)
	if err != nil {
		adapterLogger.Error("Failed to publish interaction event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish interaction %s: %w", interaction.ID, err)
	}

	adapterLogger.Info("Successfully published interaction event", nil)
	return nil
}
