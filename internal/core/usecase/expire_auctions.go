package usecase

import (
	"context"
	"fmt"
	"time"

	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/port/usecases"
)

// ExpireAuctionsUseCase sweeps stored auctions whose end time has passed
// into the expired state. It complements the scrape path: an auction
// removed from the portal never gets re-scraped, so its status has to be
// advanced locally.
type ExpireAuctionsUseCase struct {
	storage port.AuctionStoragePort
	now     func() time.Time
}

var _ usecases.ExpireAuctionsPort = (*ExpireAuctionsUseCase)(nil)

func NewExpireAuctionsUseCase(storage port.AuctionStoragePort) (*ExpireAuctionsUseCase, error) {
	if storage == nil {
		return nil, fmt.Errorf("expire usecase: storage cannot be nil")
	}
	return &ExpireAuctionsUseCase{storage: storage, now: time.Now}, nil
}

func (uc *ExpireAuctionsUseCase) Execute(ctx context.Context) (int64, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ExpireAuctionsUseCase",
	})

	expired, err := uc.storage.ExpireFinished(ctx, uc.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire finished auctions: %w", err)
	}

	if expired > 0 {
		logger.Info("Finished auctions expired", port.Fields{"count": expired})
	}
	return expired, nil
}
