package port

import (
	"context"

	"eaukcija-parser-service/internal/core/domain"

	"github.com/google/uuid"
)

// TaskReporterPort publishes the end-of-run summary for a queued scrape
// task.
type TaskReporterPort interface {
	ReportResults(ctx context.Context, taskID uuid.UUID, stats domain.ScrapeStats) error
}
