package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	token_adapter "car-market-service/internal/adapters/jwt"
	logger_adapter "car-market-service/internal/adapters/logger"
	postgres_adapter "car-market-service/internal/adapters/postgres"
	rabbitmq_adapter "car-market-service/internal/adapters/rabbitmq"
	"car-market-service/internal/adapters/rest"
	"car-market-service/internal/configs"
	"car-market-service/internal/constants"
	"car-market-service/internal/core/port"
	"car-market-service/internal/core/usecase"
	"car-market-service/pkg/fluentlogger"
	"car-market-service/pkg/postgres"
	"car-market-service/pkg/rabbitmq/rabbitmq_common"
	"car-market-service/pkg/rabbitmq/rabbitmq_consumer"
	"car-market-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager            *rabbitmq_common.ConnectionManager
	listingsEventsListener port.EventListenerPort
	interactionsProducer   *rabbitmq_producer.Publisher
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	vehicleStorageAdapter, err := postgres_adapter.NewPostgresVehicleStorageAdapter(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres vehicle storage adapter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres vehicle storage adapter: %w", err)
	}

	userRepository, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres user repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres user repository: %w", err)
	}

	favoritesRepository, err := postgres_adapter.NewFavoritesRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres favorites repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres favorites repository: %w", err)
	}

	interactionRepository, err := postgres_adapter.NewInteractionRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres interaction repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres interaction repository: %w", err)
	}
	appLogger.Info("Postgres adapters initialized.", nil)

	tokenService, err := token_adapter.NewTokenService(appConfig.JWT.SigningKey)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	// --- 4. RABBITMQ ---
	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
	connManager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.MarketEventsExchange,
		ExchangeType:             "direct",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,

		Logger: rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
	}
	eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		appLogger.Error("Failed to create event producer", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	appLogger.Info("RabbitMQ Event Producer initialized.", nil)

	interactionReporter, err := rabbitmq_adapter.NewInteractionReporterAdapter(eventProducer, constants.RoutingKeyUserInteractions)
	if err != nil {
		appLogger.Error("Failed to create interaction reporter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create interaction reporter: %w", err)
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. USE CASES (ядро бизнес-логики) ---
	searchVehiclesUseCase := usecase.NewSearchVehiclesUseCase(vehicleStorageAdapter)
	findSimilarVehiclesUseCase := usecase.NewFindSimilarVehiclesUseCase(vehicleStorageAdapter)
	getListingUseCase := usecase.NewGetListingUseCase(vehicleStorageAdapter)
	getLatestListingsUseCase := usecase.NewGetLatestListingsUseCase(vehicleStorageAdapter)
	deleteListingUseCase := usecase.NewDeleteListingUseCase(vehicleStorageAdapter)
	saveVehiclesUseCase := usecase.NewSaveVehiclesUseCase(vehicleStorageAdapter)

	registerUserUseCase := usecase.NewRegisterUserUseCase(userRepository, tokenService, appConfig.JWT.TokenTTL)
	loginUserUseCase := usecase.NewLoginUserUseCase(userRepository, tokenService, appConfig.JWT.TokenTTL)
	validateTokenUseCase := usecase.NewValidateTokenUseCase(tokenService)
	getUserProfileUseCase := usecase.NewGetUserProfileUseCase(userRepository)

	addToFavoritesUseCase := usecase.NewAddToFavoritesUseCase(favoritesRepository)
	removeFromFavoritesUseCase := usecase.NewRemoveFromFavoritesUseCase(favoritesRepository)
	getUserFavoritesUseCase := usecase.NewGetUserFavoritesUseCase(favoritesRepository)
	recordInteractionUseCase := usecase.NewRecordInteractionUseCase(interactionRepository, interactionReporter)

	appLogger.Info("All use cases initialized.", nil)

	// --- 6. ВХОДЯЩИЕ АДАПТЕРЫ (те, которые ВЫЗЫВАЮТ наше ядро) ---
	listingsConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:          rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:       constants.QueueVehicleListings,
		DurableQueue:    true,
		ExchangeName:    constants.MarketEventsExchange,
		ExchangeType:    "direct",
		DurableExchange: true,
		RoutingKey:      constants.RoutingKeyVehicleListings,
		PrefetchCount:   100,
		ConsumerTag:     "vehicle-listings-saver",

		EnableRetryMechanism: true,
		RetryExchange:        constants.VehicleListingsRetryExchange,
		RetryQueue:           constants.VehicleListingsRetryQueue,
		RetryTTL:             10000, // 10 секунд в миллисекундах
		FinalDLXExchange:     constants.FinalDLXExchange,
		FinalDLQ:             constants.FinalDLQ,
		FinalDLQRoutingKey:   constants.FinalDLQRoutingKey,
		MaxRetries:           3,
	}
	listingsListener, err := rabbitmq_adapter.NewVehicleListingsConsumerAdapter(listingsConsumerCfg, saveVehiclesUseCase, baseLogger, connManager)
	if err != nil {
		appLogger.Error("Failed to create Vehicle Listings listener", err, nil)
		dbPool.Close()
		return nil, err
	}
	appLogger.Info("Vehicle Listings Events Listener initialized.", nil)

	// REST API Server
	searchHandler := rest.NewSearchHandler(searchVehiclesUseCase)
	listingHandler := rest.NewListingHandler(getListingUseCase, getLatestListingsUseCase, findSimilarVehiclesUseCase, deleteListingUseCase)
	authHandler := rest.NewAuthHandler(registerUserUseCase, loginUserUseCase, getUserProfileUseCase)
	favoritesHandler := rest.NewFavoritesHandler(addToFavoritesUseCase, removeFromFavoritesUseCase, getUserFavoritesUseCase)
	feedbackHandler := rest.NewFeedbackHandler(recordInteractionUseCase)
	authMiddleware := rest.NewAuthMiddleware(validateTokenUseCase)

	apiServer := rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.AllowedOrigins,
		searchHandler, listingHandler, authHandler, favoritesHandler, feedbackHandler,
		authMiddleware, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// --- 7. Собираем приложение ---
	application := &App{
		config:                 appConfig,
		dbPool:                 dbPool,
		apiServer:              apiServer,
		connManager:            connManager,
		listingsEventsListener: listingsListener,
		interactionsProducer:   eventProducer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	// Используем WaitGroup для ожидания завершения всех фоновых задач
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		// Ждем завершения всех запущенных горутин (слушателей)
		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		// Теперь безопасно закрываем ресурсы
		if a.listingsEventsListener != nil {
			if err := a.listingsEventsListener.Close(); err != nil {
				a.logger.Error("Error closing vehicle listings listener", err, nil)
			}
		}

		if a.interactionsProducer != nil {
			if err := a.interactionsProducer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}

		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}

	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	// Функция-хелпер для запуска слушателей
	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	wg.Add(1)
	go startListener("Vehicle Listings Events Listener", a.listingsEventsListener)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
