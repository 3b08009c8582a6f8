package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"car-market-service/pkg/rabbitmq/rabbitmq_common"
	"car-market-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BatchMessageHandler - обработчик для пачки сообщений.
// Возвращенная ошибка означает, что пачку нужно отправить на ретрай.
type BatchMessageHandler func(deliveries []amqp.Delivery) error

// ConsumerConfig конфигурация для потребителя
type ConsumerConfig struct {
	rabbitmq_common.Config
	// Настройки очереди
	QueueName       string
	DurableQueue    bool
	AutoDeleteQueue bool
	QueueArgs       amqp.Table
	// Обменник, к которому привязывается очередь
	ExchangeName    string
	ExchangeType    string
	DurableExchange bool
	RoutingKey      string
	// QoS
	PrefetchCount int
	// Потребитель
	ConsumerTag string

	// Ретраи: сообщения после неудачи уходят в retry-обменник, отлеживаются
	// в wait-очереди с TTL и возвращаются в основной обменник. Исчерпав
	// MaxRetries, сообщение публикуется в финальный DLX.
	EnableRetryMechanism bool
	RetryExchange        string
	RetryQueue           string
	RetryTTL             int // миллисекунды
	FinalDLXExchange     string
	FinalDLQ             string
	FinalDLQRoutingKey   string
	MaxRetries           int

	Logger rabbitmq_common.Logger
}

// BatchConsumer копит сообщения в пачку и отдает их обработчику целиком,
// когда пачка заполнилась или истек таймаут накопления.
type BatchConsumer struct {
	config            ConsumerConfig
	connection        *amqp.Connection
	channel           *amqp.Channel
	finalDlxPublisher *rabbitmq_producer.Publisher
	handler           BatchMessageHandler
	batchSize         int
	batchTimeout      time.Duration
	wg                sync.WaitGroup // для graceful shutdown

	Logger rabbitmq_common.Logger
}

// NewBatchConsumer создает пакетного потребителя и настраивает всю топологию.
func NewBatchConsumer(cfg ConsumerConfig, handler BatchMessageHandler, batchSize int, batchTimeout time.Duration, connManager *rabbitmq_common.ConnectionManager) (*BatchConsumer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("batch consumer: invalid base config: %w", err)
	}
	if handler == nil {
		return nil, fmt.Errorf("batch consumer: message handler is required")
	}
	if cfg.QueueName == "" {
		return nil, fmt.Errorf("batch consumer: queue name is required")
	}
	// Префетч не должен быть меньше размера пачки, иначе она никогда не заполнится
	if cfg.PrefetchCount < batchSize {
		cfg.PrefetchCount = batchSize
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("batch consumer: failed to get channel from manager: %w", err)
	}

	c := &BatchConsumer{
		config:       cfg,
		connection:   conn,
		channel:      ch,
		handler:      handler,
		batchSize:    batchSize,
		batchTimeout: batchTimeout,
		Logger:       logger,
	}

	if err := c.setupTopology(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("batch consumer: topology setup failed: %w", err)
	}

	if cfg.EnableRetryMechanism {
		dlxPublisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: cfg.URL},
			ExchangeName:             cfg.FinalDLXExchange,
			DeclareExchangeIfMissing: false, // Уже объявлен в setupTopology
			Logger:                   logger,
		}, connManager)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("batch consumer: failed to create final DLX publisher: %w", err)
		}
		c.finalDlxPublisher = dlxPublisher
	}

	return c, nil
}

// setupTopology объявляет QoS, очередь, обменник, привязку и инфраструктуру ретраев.
func (c *BatchConsumer) setupTopology() error {
	if c.config.PrefetchCount > 0 {
		if err := c.channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	queueArgs := c.config.QueueArgs
	if c.config.EnableRetryMechanism {
		if queueArgs == nil {
			queueArgs = amqp.Table{}
		}
		// "мертвые" сообщения из основной очереди уходят в retry-exchange
		queueArgs["x-dead-letter-exchange"] = c.config.RetryExchange
	}

	c.Logger.Debug("Declaring queue", "name", c.config.QueueName, "durable", c.config.DurableQueue)
	if _, err := c.channel.QueueDeclare(
		c.config.QueueName,
		c.config.DurableQueue,
		c.config.AutoDeleteQueue,
		false, // exclusive
		false, // no-wait
		queueArgs,
	); err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", c.config.QueueName, err)
	}

	if c.config.ExchangeName != "" {
		c.Logger.Debug("Declaring exchange", "name", c.config.ExchangeName, "type", c.config.ExchangeType)
		if err := c.channel.ExchangeDeclare(
			c.config.ExchangeName,
			c.config.ExchangeType,
			c.config.DurableExchange,
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("failed to declare exchange '%s': %w", c.config.ExchangeName, err)
		}

		c.Logger.Debug("Binding queue to exchange",
			"queue_name", c.config.QueueName,
			"exchange_name", c.config.ExchangeName,
			"routing_key", c.config.RoutingKey,
		)
		if err := c.channel.QueueBind(c.config.QueueName, c.config.RoutingKey, c.config.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue '%s': %w", c.config.QueueName, err)
		}
	}

	if !c.config.EnableRetryMechanism {
		return nil
	}

	// Финальный DLX и DLQ - туда попадают сообщения после всех ретраев
	if err := c.channel.ExchangeDeclare(c.config.FinalDLXExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLX: %w", err)
	}
	if _, err := c.channel.QueueDeclare(c.config.FinalDLQ, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLQ: %w", err)
	}
	if err := c.channel.QueueBind(c.config.FinalDLQ, c.config.FinalDLQRoutingKey, c.config.FinalDLXExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind final DLQ: %w", err)
	}

	// Retry-обменник (fanout) и очередь ожидания с TTL,
	// возвращающая сообщения в основной обменник
	if err := c.channel.ExchangeDeclare(c.config.RetryExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare retry exchange: %w", err)
	}
	if _, err := c.channel.QueueDeclare(
		c.config.RetryQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		amqp.Table{
			"x-message-ttl":          int32(c.config.RetryTTL),
			"x-dead-letter-exchange": c.config.ExchangeName,
		},
	); err != nil {
		return fmt.Errorf("failed to declare retry-wait queue: %w", err)
	}
	if err := c.channel.QueueBind(c.config.RetryQueue, "", c.config.RetryExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind retry-wait queue: %w", err)
	}

	c.Logger.Debug("Retry topology ready", "queue", c.config.QueueName)
	return nil
}

// getDeathCount достает из заголовка x-death число смертей в основной очереди.
func (c *BatchConsumer) getDeathCount(d amqp.Delivery) int64 {
	if d.Headers == nil {
		return 0
	}
	xDeath, ok := d.Headers["x-death"]
	if !ok {
		return 0
	}
	deaths, ok := xDeath.([]interface{})
	if !ok {
		return 0
	}

	// x-death - массив смертей. Нас интересует, сколько раз сообщение
	// умирало именно в основной очереди, а не в retry-очереди.
	for _, death := range deaths {
		if tbl, ok := death.(amqp.Table); ok {
			if queue, ok := tbl["queue"].(string); ok && queue == c.config.QueueName {
				if count, ok := tbl["count"].(int64); ok {
					return count
				}
			}
		}
	}
	return 0
}

// StartConsuming начинает потребление и накопление сообщений.
// Блокируется до отмены контекста или обрыва соединения.
func (c *BatchConsumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.connection.IsClosed() {
		return fmt.Errorf("batch consumer: not connected")
	}

	msgs, err := c.channel.Consume(
		c.config.QueueName,
		c.config.ConsumerTag,
		false, // auto-ack = false
		false, // exclusive
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("batch consumer: failed to register a consumer: %w", err)
	}

	c.Logger.Info("[*] Waiting for messages on queue",
		"queue_name", c.config.QueueName,
		"batch_size", c.batchSize,
		"batch_timeout", c.batchTimeout)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		batch := make([]amqp.Delivery, 0, c.batchSize)
		timer := time.NewTimer(c.batchTimeout)
		// Таймер нужен только когда пачка непустая: сразу останавливаем
		if !timer.Stop() {
			<-timer.C
		}

		for {
			select {
			case <-ctx.Done():
				c.Logger.Info("Context cancelled. Processing final batch...")
				c.processBatch(batch)
				return

			case msg, ok := <-msgs:
				if !ok {
					c.Logger.Info("Deliveries channel closed. Processing final batch...")
					c.processBatch(batch)
					return
				}

				if len(batch) == 0 {
					timer.Reset(c.batchTimeout)
				}
				batch = append(batch, msg)

				if len(batch) >= c.batchSize {
					if !timer.Stop() {
						<-timer.C
					}
					c.processBatch(batch)
					batch = make([]amqp.Delivery, 0, c.batchSize)
				}

			case <-timer.C:
				if len(batch) > 0 {
					c.Logger.Info("Timeout reached. Processing batch of messages", "batch_size", len(batch))
					c.processBatch(batch)
					batch = make([]amqp.Delivery, 0, c.batchSize)
				}
			}
		}
	}()

	notifyClose := make(chan *amqp.Error)
	c.connection.NotifyClose(notifyClose)

	select {
	case <-ctx.Done():
		c.Logger.Info("Context cancelled for consumer. Shutting down.", "consumer_tag", c.config.ConsumerTag)
		return nil

	case err := <-notifyClose:
		c.Logger.Error(err, "Connection closed for consumer", "consumer_tag", c.config.ConsumerTag)
		return err
	}
}

// processBatch вызывает внешний обработчик и отправляет Ack/Nack.
func (c *BatchConsumer) processBatch(batch []amqp.Delivery) {
	if len(batch) == 0 {
		return
	}

	if err := c.handler(batch); err == nil {
		// Успех: подтверждаем всю пачку одним Ack с multiple=true
		lastTag := batch[len(batch)-1].DeliveryTag
		_ = c.channel.Ack(lastTag, true)
		c.Logger.Info("Successfully Ack'd batch of messages", "batch_size", len(batch))
		return
	} else {
		c.Logger.Error(err, "Handler returned error for batch")
	}

	if !c.config.EnableRetryMechanism {
		lastTag := batch[len(batch)-1].DeliveryTag
		_ = c.channel.Nack(lastTag, true, false) // multiple=true, requeue=false
		c.Logger.Info("Retry disabled. Nacking entire batch without requeue.")
		return
	}

	// Ретраи включены: судьба каждого сообщения решается индивидуально
	for _, d := range batch {
		deathCount := c.getDeathCount(d)
		if deathCount < int64(c.config.MaxRetries) {
			c.Logger.Info("Nacking message for retry", "delivery_tag", d.DeliveryTag, "death_count", deathCount)
			_ = c.channel.Nack(d.DeliveryTag, false, false) // requeue=false -> retry-loop через DLX
			continue
		}

		// Лимит достигнут, отправляем в финальный DLQ
		c.Logger.Info("Max retries reached for message. Publishing to final DLX.", "delivery_tag", d.DeliveryTag)
		err := c.finalDlxPublisher.Publish(
			context.Background(),
			c.config.FinalDLQRoutingKey,
			amqp.Publishing{
				ContentType:  d.ContentType,
				Body:         d.Body,
				Headers:      d.Headers,
				Timestamp:    time.Now(),
				DeliveryMode: amqp.Persistent,
			},
		)
		if err != nil {
			c.Logger.Error(err, "Failed to publish to final DLX. Nacking to trigger retry loop again.", "delivery_tag", d.DeliveryTag)
			_ = d.Nack(false, false)
		} else {
			// Копия в DLQ, оригинал можно подтверждать
			_ = d.Ack(false)
		}
	}
}

// Close дожидается завершения обработки последней пачки и закрывает канал.
func (c *BatchConsumer) Close() error {
	c.Logger.Debug("Waiting for message handlers to finish...")
	c.wg.Wait()

	var firstErr error
	if c.finalDlxPublisher != nil {
		if err := c.finalDlxPublisher.Close(); err != nil {
			c.Logger.Error(err, "Error closing final DLX publisher")
			firstErr = err
		}
	}
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.Logger.Error(err, "Error closing consumer channel")
			if firstErr == nil {
				firstErr = err
			}
		}
		c.channel = nil
	}

	c.Logger.Info("Consumer closed")
	return firstErr
}
