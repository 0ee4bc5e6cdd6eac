package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// TaskResultDTO is the wire form of an end-of-run report.
type TaskResultDTO struct {
	TaskID  uuid.UUID      `json:"task_id"`
	Results map[string]int `json:"results"`
}

// TaskReporterAdapter publishes scrape-run summaries back to the broker.
type TaskReporterAdapter struct {
	publisher *rabbitmq_producer.Publisher
}

var _ port.TaskReporterPort = (*TaskReporterAdapter)(nil)

func NewTaskReporterAdapter(publisher *rabbitmq_producer.Publisher) (*TaskReporterAdapter, error) {
	if publisher == nil {
		return nil, fmt.Errorf("task reporter: publisher cannot be nil")
	}
	return &TaskReporterAdapter{publisher: publisher}, nil
}

func (a *TaskReporterAdapter) ReportResults(ctx context.Context, taskID uuid.UUID, stats domain.ScrapeStats) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TaskReporterAdapter",
		"task_id":   taskID.String(),
	})

	dto := TaskResultDTO{
		TaskID: taskID,
		Results: map[string]int{
			"created":         stats.Created,
			"updated":         stats.Updated,
			"failed":          stats.Failed,
			"pages_visited":   stats.PagesVisited,
			"total_processed": stats.Processed(),
		},
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("task reporter: failed to marshal result: %w", err)
	}

	err = a.publisher.Publish(ctx, constants.RoutingKeyTaskResults, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    uuid.NewString(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("task reporter: failed to publish result: %w", err)
	}

	logger.Info("Task result reported", port.Fields{"results": dto.Results})
	return nil
}
