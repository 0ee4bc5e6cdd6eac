package port

import (
	"context"
	"errors"

	"eaukcija-parser-service/internal/core/domain"
)

// ErrNoContent signals that a listing page rendered without any auction
// items; the orchestrator treats it as the end of the listing.
var ErrNoContent = errors.New("fetcher: listing page has no auction items")

// ErrTabUnavailable signals that a detail tab could not be activated
// after the bounded number of click retries; the enclosing item is
// abandoned.
var ErrTabUnavailable = errors.New("fetcher: tab could not be activated")

// AuctionFetcherPort extracts auction data from the portal through the
// shared browser session.
type AuctionFetcherPort interface {
	// FetchListingCodes navigates to the numbered listing page and
	// returns the auction codes found on it. Returns ErrNoContent when
	// the page renders empty.
	FetchListingCodes(ctx context.Context, page int) ([]domain.AuctionCode, error)

	// FetchAuctionDetails opens the auction's detail page and walks its
	// tabs, accumulating one record. Parse failures of individual fields
	// are recovered (nil field, warning logged); structural failures
	// abort the item.
	FetchAuctionDetails(ctx context.Context, code string) (*domain.AuctionRecord, error)

	// ReturnToListing navigates back to the numbered listing page after a
	// detail visit, successful or not.
	ReturnToListing(ctx context.Context, page int) error
}
