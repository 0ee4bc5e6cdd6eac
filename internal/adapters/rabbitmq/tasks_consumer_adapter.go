package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/contracts"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/port/usecases"
	"eaukcija-parser-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	scrapeTaskEventType    = "ScrapeTaskEvent"
	scrapeTaskEventVersion = "1.0.0"
)

// ScrapeTaskDTO is the wire form of a queued scrape request.
type ScrapeTaskDTO struct {
	TaskID    uuid.UUID `json:"task_id"`
	Pages     int       `json:"pages"`
	StartPage int       `json:"start_page"`
}

// TasksConsumerAdapter listens for scrape tasks on the broker, runs the
// scrape flow and reports the results back.
type TasksConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	scraper  usecases.ScrapeAuctionsPort
	reporter port.TaskReporterPort
	logger   port.LoggerPort
}

var _ port.EventListenerPort = (*TasksConsumerAdapter)(nil)

func NewTasksConsumerAdapter(
	consumer *rabbitmq_consumer.Consumer,
	scraper usecases.ScrapeAuctionsPort,
	reporter port.TaskReporterPort,
	logger port.LoggerPort,
) (*TasksConsumerAdapter, error) {
	if consumer == nil {
		return nil, fmt.Errorf("tasks consumer: consumer cannot be nil")
	}
	if scraper == nil {
		return nil, fmt.Errorf("tasks consumer: scraper cannot be nil")
	}
	if reporter == nil {
		return nil, fmt.Errorf("tasks consumer: reporter cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("tasks consumer: logger cannot be nil")
	}
	return &TasksConsumerAdapter{
		consumer: consumer,
		scraper:  scraper,
		reporter: reporter,
		logger:   logger,
	}, nil
}

// Start blocks consuming tasks until the context is cancelled.
func (a *TasksConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.Start(ctx, a.handleDelivery)
}

func (a *TasksConsumerAdapter) handleDelivery(ctx context.Context, delivery amqp.Delivery) error {
	logger := a.logger.WithFields(port.Fields{
		"component":  "TasksConsumerAdapter",
		"message_id": delivery.MessageId,
	})

	if err := contracts.ValidateEvent(scrapeTaskEventType, scrapeTaskEventVersion, delivery.Body); err != nil {
		return fmt.Errorf("scrape task rejected by schema: %w", err)
	}

	var task ScrapeTaskDTO
	if err := json.Unmarshal(delivery.Body, &task); err != nil {
		return fmt.Errorf("failed to unmarshal scrape task: %w", err)
	}

	taskLogger := logger.WithFields(port.Fields{"task_id": task.TaskID.String()})
	taskLogger.Info("Scrape task accepted", port.Fields{
		"pages":      task.Pages,
		"start_page": task.StartPage,
	})

	runCtx := contextkeys.ContextWithLogger(ctx, taskLogger)

	stats, err := a.scraper.Execute(runCtx, domain.ScrapeCriteria{
		Pages:     task.Pages,
		StartPage: task.StartPage,
	})
	if err != nil {
		return fmt.Errorf("scrape task %s failed: %w", task.TaskID, err)
	}

	if err := a.reporter.ReportResults(runCtx, task.TaskID, stats); err != nil {
		// The scrape itself succeeded; a lost report is not worth a
		// requeue that would re-run the whole scrape.
		taskLogger.Error("Failed to report task results", err, nil)
	}

	return nil
}

// Close closes the underlying consumer channel.
func (a *TasksConsumerAdapter) Close() error {
	return a.consumer.Close()
}
