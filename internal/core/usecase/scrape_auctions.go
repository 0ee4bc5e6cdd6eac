// Package usecase wires the ports into the business flows of the
// service.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/port/usecases"
)

// ScrapeAuctionsUseCase walks the listing pages and processes every
// auction found, keeping per-run counters. Failures are contained at the
// item boundary: one broken auction costs one Failed increment, never
// the run.
type ScrapeAuctionsUseCase struct {
	fetcher   port.AuctionFetcherPort
	processor usecases.ProcessAuctionPort
}

var _ usecases.ScrapeAuctionsPort = (*ScrapeAuctionsUseCase)(nil)

func NewScrapeAuctionsUseCase(fetcher port.AuctionFetcherPort, processor usecases.ProcessAuctionPort) (*ScrapeAuctionsUseCase, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("scrape usecase: fetcher cannot be nil")
	}
	if processor == nil {
		return nil, fmt.Errorf("scrape usecase: processor cannot be nil")
	}
	return &ScrapeAuctionsUseCase{fetcher: fetcher, processor: processor}, nil
}

// Execute visits listing pages starting at criteria.StartPage. A zero
// Pages budget runs until a listing page renders empty; the empty page is
// the only normal termination in that mode.
func (uc *ScrapeAuctionsUseCase) Execute(ctx context.Context, criteria domain.ScrapeCriteria) (domain.ScrapeStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ScrapeAuctionsUseCase",
	})

	startPage := criteria.StartPage
	if startPage < 1 {
		startPage = 1
	}

	var stats domain.ScrapeStats

	for page := startPage; ; page++ {
		if criteria.Pages > 0 && page >= startPage+criteria.Pages {
			break
		}
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		pageLogger := logger.WithFields(port.Fields{"page": page})

		codes, err := uc.fetcher.FetchListingCodes(ctx, page)
		if err != nil {
			if errors.Is(err, port.ErrNoContent) {
				pageLogger.Info("Listing ended, stopping run", nil)
				break
			}
			pageLogger.Error("Failed to scan listing page", err, nil)
			stats.PagesVisited++
			// Without a page budget a persistent listing failure would
			// loop forever, so it ends the run instead.
			if criteria.Pages == 0 {
				break
			}
			continue
		}
		stats.PagesVisited++

		for _, code := range codes {
			created, err := uc.processor.Execute(ctx, code.Numeric)
			if err != nil {
				stats.Failed++
				pageLogger.Error("Failed to process auction", err, port.Fields{"code": code.Numeric})
			} else if created {
				stats.Created++
			} else {
				stats.Updated++
			}

			// The detail visit leaves the browser off the listing; going
			// back keeps the next item's state deterministic.
			if err := uc.fetcher.ReturnToListing(ctx, page); err != nil {
				pageLogger.Warn("Failed to return to listing page", port.Fields{"error": err.Error()})
			}

			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			default:
			}
		}
	}

	logger.Info("Scrape run finished", port.Fields{
		"pages_visited": stats.PagesVisited,
		"created":       stats.Created,
		"updated":       stats.Updated,
		"failed":        stats.Failed,
	})
	return stats, nil
}
