package usecases

import (
	"context"

	"eaukcija-parser-service/internal/core/domain"
)

// ScrapeAuctionsPort runs the full listing/detail scrape and returns the
// per-run counters.
type ScrapeAuctionsPort interface {
	Execute(ctx context.Context, criteria domain.ScrapeCriteria) (domain.ScrapeStats, error)
}
