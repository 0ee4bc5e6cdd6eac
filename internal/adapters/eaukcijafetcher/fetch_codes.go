package eaukcijafetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
)

// FetchListingCodes navigates to the numbered listing page and extracts
// the auction codes of every item on it.
func (a *EaukcijaFetcherAdapter) FetchListingCodes(ctx context.Context, page int) ([]domain.AuctionCode, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "EaukcijaFetcherAdapter (FetchListingCodes)",
		"page":      page,
	})

	url := a.listingURL(page)
	if err := a.browser.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to open listing page %d: %w", page, err)
	}

	if err := a.browser.WaitVisible(ctx, constants.SelAuctionListItem, a.waitTimeout); err != nil {
		if errors.Is(err, port.ErrWaitTimeout) {
			logger.Info("No auction items rendered on listing page", nil)
			return nil, fmt.Errorf("listing page %d: %w", page, port.ErrNoContent)
		}
		return nil, fmt.Errorf("failed waiting for listing page %d: %w", page, err)
	}

	labels, err := a.browser.Texts(ctx, constants.SelAuctionListCode)
	if err != nil {
		return nil, fmt.Errorf("failed to read auction codes on page %d: %w", page, err)
	}

	codes := make([]domain.AuctionCode, 0, len(labels))
	for _, label := range labels {
		numeric := extractDigits(label)
		if numeric == "" {
			logger.Warn("Listing item label carries no numeric code, skipping", port.Fields{"label": label})
			continue
		}
		codes = append(codes, domain.AuctionCode{
			Label:   strings.TrimSpace(label),
			Numeric: numeric,
		})
	}

	logger.Debug("Listing page scanned", port.Fields{"items": len(codes)})
	return codes, nil
}

// ReturnToListing brings the browser back to the numbered listing page
// after a detail visit.
func (a *EaukcijaFetcherAdapter) ReturnToListing(ctx context.Context, page int) error {
	if err := a.browser.Navigate(ctx, a.listingURL(page)); err != nil {
		return fmt.Errorf("failed to return to listing page %d: %w", page, err)
	}
	if err := a.browser.WaitVisible(ctx, constants.SelAuctionListItem, a.waitTimeout); err != nil {
		return fmt.Errorf("listing page %d did not render after return: %w", page, err)
	}
	return nil
}
