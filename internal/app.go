package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"eaukcija-parser-service/internal/adapters/browser"
	"eaukcija-parser-service/internal/adapters/eaukcijafetcher"
	logger_adapter "eaukcija-parser-service/internal/adapters/logger"
	postgres_adapter "eaukcija-parser-service/internal/adapters/postgres"
	rabbitmq_adapter "eaukcija-parser-service/internal/adapters/rabbitmq"
	"eaukcija-parser-service/internal/configs"
	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/usecase"
	"eaukcija-parser-service/pkg/postgres"
	"eaukcija-parser-service/pkg/rabbitmq/rabbitmq_common"
	"eaukcija-parser-service/pkg/rabbitmq/rabbitmq_consumer"
	"eaukcija-parser-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App is the long-running worker: it consumes scrape tasks from the
// broker, runs them against the portal and reports the results back.
type App struct {
	config *configs.AppConfig
	logger port.LoggerPort

	fluentClient *fluent.Fluent
	dbPool       *pgxpool.Pool
	connManager  *rabbitmq_common.ConnectionManager
	publisher    *rabbitmq_producer.Publisher
	browser      port.BrowserPort

	tasksListener port.EventListenerPort
}

// NewApp builds the whole dependency graph of the worker.
func NewApp(ctx context.Context) (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	if appConfig.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required for the worker")
	}

	appLogger, fluentClient, err := BuildLogger(appConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	appLogger = appLogger.WithFields(port.Fields{"app": appConfig.AppName})

	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Connected to PostgreSQL pool", nil)

	pkgLogger := rabbitmq_adapter.NewPkgLoggerBridge(appLogger)
	connManager, err := rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, pkgLogger)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create RabbitMQ connection manager: %w", err)
	}

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.ExchangeName,
		ExchangeType:             "direct",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   pkgLogger,
	}, connManager)
	if err != nil {
		connManager.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}

	browserAdapter, err := browser.NewChromedpBrowserAdapter(ctx, appConfig.Eaukcija.Headless)
	if err != nil {
		_ = publisher.Close()
		connManager.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	appLogger.Info("Browser session started", port.Fields{"headless": appConfig.Eaukcija.Headless})

	fetcherAdapter, err := eaukcijafetcher.NewEaukcijaFetcherAdapter(browserAdapter, appConfig.Eaukcija.BaseURL)
	if err != nil {
		return nil, err
	}
	storageAdapter, err := postgres_adapter.NewAuctionStorageAdapter(dbPool)
	if err != nil {
		return nil, err
	}
	reporterAdapter, err := rabbitmq_adapter.NewTaskReporterAdapter(publisher)
	if err != nil {
		return nil, err
	}

	processUseCase, err := usecase.NewProcessAuctionUseCase(fetcherAdapter, storageAdapter)
	if err != nil {
		return nil, err
	}
	scrapeUseCase, err := usecase.NewScrapeAuctionsUseCase(fetcherAdapter, processUseCase)
	if err != nil {
		return nil, err
	}

	consumer, err := rabbitmq_consumer.NewConsumer(rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueueScrapeTasks,
		DeclareQueue:        true,
		DurableQueue:        true,
		ExchangeNameForBind: constants.ExchangeName,
		RoutingKeyForBind:   constants.RoutingKeyScrapeTasks,

		// Tasks drive a single shared browser session, so they run one at
		// a time.
		PrefetchCount: 1,
		ConsumerTag:   "eaukcija-scrape-worker",
		Logger:        pkgLogger,
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks consumer: %w", err)
	}

	tasksListener, err := rabbitmq_adapter.NewTasksConsumerAdapter(consumer, scrapeUseCase, reporterAdapter, appLogger)
	if err != nil {
		return nil, err
	}

	return &App{
		config:        appConfig,
		logger:        appLogger,
		fluentClient:  fluentClient,
		dbPool:        dbPool,
		connManager:   connManager,
		publisher:     publisher,
		browser:       browserAdapter,
		tasksListener: tasksListener,
	}, nil
}

// Run starts the task listener and blocks until a shutdown signal or a
// listener failure.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	appCtx = contextkeys.ContextWithLogger(appCtx, a.logger)

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated", nil)
		wg.Wait()

		if err := a.tasksListener.Close(); err != nil {
			a.logger.Error("Error closing tasks listener", err, nil)
		}
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
		a.connManager.Close()
		if err := a.browser.Close(); err != nil {
			a.logger.Error("Error closing browser session", err, nil)
		}
		a.dbPool.Close()
		if a.fluentClient != nil {
			_ = a.fluentClient.Close()
		}
		a.logger.Info("Application shut down gracefully", nil)
	}()

	a.logger.Info("Application is starting", nil)

	consumerErrors := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.tasksListener.Start(appCtx); err != nil {
			consumerErrors <- fmt.Errorf("tasks listener error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case receivedSignal := <-quit:
		a.logger.Info("Received shutdown signal", port.Fields{"signal": receivedSignal.String()})
	case err := <-consumerErrors:
		a.logger.Error("A critical component failed", err, nil)
	}

	cancelApp()
	return nil
}

// BuildLogger assembles the logger stack: colored stdout always, Fluent
// Bit forwarding when enabled. The returned fluent client is nil when
// forwarding is off; the caller owns closing it.
func BuildLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    ParseLogLevel(cfg.StdoutLogger.Level),
		UseColor: true,
	})

	if !cfg.FluentBit.Enabled {
		return stdoutLogger, nil, nil
	}

	fluentClient, err := fluent.New(fluent.Config{
		FluentHost:    cfg.FluentBit.Host,
		FluentPort:    cfg.FluentBit.Port,
		TagPrefix:     cfg.AppName,
		Async:         true,
		MarshalAsJSON: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Fluent Bit: %w", err)
	}

	fluentLogger, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, ParseLogLevel(cfg.FluentBit.Level))
	if err != nil {
		_ = fluentClient.Close()
		return nil, nil, err
	}

	multi, err := logger_adapter.NewMultiloggerAdapter(stdoutLogger, fluentLogger)
	if err != nil {
		_ = fluentClient.Close()
		return nil, nil, err
	}
	return multi, fluentClient, nil
}

// ParseLogLevel maps a configuration string to a slog level, defaulting
// to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
