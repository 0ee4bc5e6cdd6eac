package usecase

import (
	"context"
	"fmt"

	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/port/usecases"
)

// ProcessAuctionUseCase extracts one auction through the fetcher and
// hands the record to storage.
type ProcessAuctionUseCase struct {
	fetcher port.AuctionFetcherPort
	storage port.AuctionStoragePort
}

var _ usecases.ProcessAuctionPort = (*ProcessAuctionUseCase)(nil)

func NewProcessAuctionUseCase(fetcher port.AuctionFetcherPort, storage port.AuctionStoragePort) (*ProcessAuctionUseCase, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("process auction usecase: fetcher cannot be nil")
	}
	if storage == nil {
		return nil, fmt.Errorf("process auction usecase: storage cannot be nil")
	}
	return &ProcessAuctionUseCase{fetcher: fetcher, storage: storage}, nil
}

func (uc *ProcessAuctionUseCase) Execute(ctx context.Context, code string) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ProcessAuctionUseCase",
		"code":      code,
	})

	record, err := uc.fetcher.FetchAuctionDetails(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to extract auction %s: %w", code, err)
	}

	created, err := uc.storage.UpsertAuction(ctx, *record)
	if err != nil {
		return false, fmt.Errorf("failed to persist auction %s: %w", code, err)
	}

	if created {
		logger.Info("New auction created", nil)
	} else {
		logger.Debug("Existing auction refreshed", nil)
	}
	return created, nil
}
