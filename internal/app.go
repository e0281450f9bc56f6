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
	"syscall"

	auth_adapter "listing-service/internal/adapters/auth"
	localfiles_adapter "listing-service/internal/adapters/localfiles"
	logger_adapter "listing-service/internal/adapters/logger"
	postgres_adapter "listing-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-service/internal/adapters/rabbitmq"
	redis_adapter "listing-service/internal/adapters/redisstore"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/constants"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"

	fluentlogger "listing-service/pkg/fluent_logger"
	"listing-service/pkg/postgres"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	eventPublisher port.EventPublisherPort
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     appConfig.Redis.Addr,
		Password: appConfig.Redis.Password,
		DB:       appConfig.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		appLogger.Error("Failed to connect to Redis", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	appLogger.Info("Successfully connected to Redis!", nil)

	// --- 4. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	propertyStorage, err := postgres_adapter.NewPropertyStorageAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create property storage adapter: %w", err)
	}
	agentStorage, err := postgres_adapter.NewAgentStorageAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create agent storage adapter: %w", err)
	}
	userStorage, err := postgres_adapter.NewUserStorageAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create user storage adapter: %w", err)
	}
	appLogger.Info("Postgres storage adapters initialized.", nil)

	mediaStorage, err := localfiles_adapter.NewMediaStorageAdapter(appConfig.Media.Root, appConfig.Media.URL)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create media storage adapter: %w", err)
	}

	tokenStore, err := redis_adapter.NewTokenStoreAdapter(redisClient)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token store adapter: %w", err)
	}
	cache, err := redis_adapter.NewCacheAdapter(redisClient)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create cache adapter: %w", err)
	}

	tokenManager, err := auth_adapter.NewJWTManager(appConfig.Auth.JWTSecret, appConfig.Auth.TokenTTL)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	// Брокер опционален: без него события каталога отбрасываются
	var eventPublisher port.EventPublisherPort = rabbitmq_adapter.NoopEventPublisher{}
	if appConfig.RabbitMQ.Enabled {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		producerCfg := rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.ListingEventsExchange,
			ExchangeType:             constants.ListingEventsExchangeType,
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
		eventPublisher, err = rabbitmq_adapter.NewListingEventsPublisherAdapter(eventProducer)
		if err != nil {
			dbPool.Close()
			return nil, err
		}
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)
	}

	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. USE CASES (ядро бизнес-логики) ---
	findPropertiesUC := usecase.NewFindPropertiesUseCase(propertyStorage, cache)
	getPropertyDetailsUC := usecase.NewGetPropertyDetailsUseCase(propertyStorage)
	createPropertyUC := usecase.NewCreatePropertyUseCase(propertyStorage, agentStorage, mediaStorage, eventPublisher)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(propertyStorage, mediaStorage)
	deletePropertyUC := usecase.NewDeletePropertyUseCase(propertyStorage)
	promotePropertyUC := usecase.NewPromotePropertyUseCase(propertyStorage, eventPublisher)
	trackViewUC := usecase.NewTrackPropertyViewUseCase(propertyStorage)
	inquirePropertyUC := usecase.NewInquirePropertyUseCase(propertyStorage, eventPublisher)
	findSimilarUC := usecase.NewFindSimilarPropertiesUseCase(propertyStorage)
	listInquiriesUC := usecase.NewListInquiriesUseCase(propertyStorage)

	listAgentsUC := usecase.NewListAgentsUseCase(agentStorage)
	getAgentUC := usecase.NewGetAgentUseCase(agentStorage)
	saveAgentUC := usecase.NewSaveAgentUseCase(agentStorage)
	deleteAgentUC := usecase.NewDeleteAgentUseCase(agentStorage)

	registerUserUC := usecase.NewRegisterUserUseCase(userStorage)
	loginUserUC := usecase.NewLoginUserUseCase(userStorage, tokenManager)
	logoutUserUC := usecase.NewLogoutUserUseCase(tokenStore)
	getUserProfileUC := usecase.NewGetUserProfileUseCase(userStorage)
	getOwnerStatsUC := usecase.NewGetOwnerStatsUseCase(propertyStorage)
	uploadVerificationUC := usecase.NewUploadVerificationUseCase(userStorage, mediaStorage)
	updateUserUC := usecase.NewUpdateUserUseCase(userStorage)

	appLogger.Info("All use cases initialized.", nil)

	// --- 6. REST API ---
	propertyHandler := rest.NewPropertyHandler(
		findPropertiesUC, getPropertyDetailsUC, createPropertyUC, updatePropertyUC,
		deletePropertyUC, promotePropertyUC, trackViewUC, inquirePropertyUC,
		findSimilarUC, listInquiriesUC, appConfig.DisplayCurrency,
	)
	agentHandler := rest.NewAgentHandler(listAgentsUC, getAgentUC, saveAgentUC, deleteAgentUC)
	userHandler := rest.NewUserHandler(
		registerUserUC, loginUserUC, logoutUserUC, getUserProfileUC,
		getOwnerStatsUC, uploadVerificationUC, updateUserUC,
	)
	authenticator := rest.NewAuthenticator(tokenManager, tokenStore)

	apiServer := rest.NewServer(appConfig.Rest.PORT, propertyHandler, agentHandler, userHandler, authenticator, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// --- 7. Собираем приложение ---
	application := &App{
		config:         appConfig,
		dbPool:         dbPool,
		redisClient:    redisClient,
		apiServer:      apiServer,
		eventPublisher: eventPublisher,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.eventPublisher != nil {
			if err := a.eventPublisher.Close(); err != nil {
				a.logger.Error("Error closing event publisher", err, nil)
			}
		}

		if a.redisClient != nil {
			if err := a.redisClient.Close(); err != nil {
				a.logger.Error("Error closing Redis client", err, nil)
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
