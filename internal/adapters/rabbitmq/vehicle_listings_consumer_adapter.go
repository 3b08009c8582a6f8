package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/contracts"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
	usecases_port "car-market-service/internal/core/port/usecases_port"
	"car-market-service/pkg/rabbitmq/rabbitmq_common"
	"car-market-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// VehicleListingsConsumerAdapter - это входящий адаптер, который слушает очередь
// с объявлениями от парсеров и вызывает use case для их сохранения.
type VehicleListingsConsumerAdapter struct {
	consumer *rabbitmq_consumer.BatchConsumer
	useCase  usecases_port.SaveVehiclesUseCasePort
	logger   port.LoggerPort
}

// NewVehicleListingsConsumerAdapter создает новый адаптер.
func NewVehicleListingsConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.SaveVehiclesUseCasePort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*VehicleListingsConsumerAdapter, error) {

	adapter := &VehicleListingsConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	// Создаем логгер для pkg-уровня с контекстом нашего компонента
	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_batch_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	// Создаем consumer, передавая ему метод этого адаптера как обработчик
	consumer, err := rabbitmq_consumer.NewBatchConsumer(consumerCfg, adapter.batchMessageHandler, 100, 10*time.Second, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for vehicle listings: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

// Start запускает потребление сообщений. Блокируется до отмены контекста.
func (a *VehicleListingsConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

func (a *VehicleListingsConsumerAdapter) Close() error {
	return a.consumer.Close()
}

// batchMessageHandler - обработчик, который принимает срез сообщений.
func (a *VehicleListingsConsumerAdapter) batchMessageHandler(deliveries []amqp.Delivery) error {

	if len(deliveries) == 0 {
		return nil // Пустая пачка, ничего не делаем
	}

	traceID, _ := deliveries[0].Headers["x-trace-id"].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}

	// Генерируем уникальный ID для этой конкретной операции батчинга
	batchID := uuid.New().String()

	batchLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID, // сквозная трассировка
		"batch_id":     batchID,
		"batch_size":   len(deliveries),
		"adapter_name": "VehicleListingsConsumerAdapter",
	})

	// Создаем контекст и кладем в него логгер и trace_id
	ctx := context.Background()
	ctx = contextkeys.ContextWithLogger(ctx, batchLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	batchLogger.Info("Received batch of messages to process.", nil)

	vehicles := make([]domain.Vehicle, 0, len(deliveries))

	// Разбираем все сообщения в пачке
	for _, d := range deliveries {
		vehicle, err := a.unmarshalVehicle(d, batchLogger)
		if err != nil {
			// Если хотя бы одно сообщение плохое, возвращаем ошибку,
			// чтобы вся пачка вернулась в очередь (и в итоге попала в DLX)
			return err
		}
		vehicles = append(vehicles, *vehicle)
	}

	stats, err := a.useCase.Execute(ctx, vehicles)
	if err != nil {
		batchLogger.Error("Batch save failed, the entire batch will be requeued.", err, nil)
		return err
	}

	batchLogger.Info("Batch processed successfully.", port.Fields{
		"created": stats.Created,
		"updated": stats.Updated,
	})
	return nil
}

// unmarshalVehicle - функция для разбора сообщения
func (a *VehicleListingsConsumerAdapter) unmarshalVehicle(d amqp.Delivery, parentLogger port.LoggerPort) (*domain.Vehicle, error) {
	msgLogger := parentLogger.WithFields(port.Fields{
		"message_id":        d.MessageId,
		"original_trace_id": d.Headers["x-trace-id"],
	})

	// Валидация по схеме
	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		return nil, err
	}

	// Десериализация в DTO
	var dto VehicleListingEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle listing event DTO: %w", err)
	}

	// Трансляция в домен
	vehicle := toDomainVehicle(&dto)
	return &vehicle, nil
}
