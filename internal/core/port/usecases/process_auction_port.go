package usecases

import "context"

// ProcessAuctionPort extracts and persists a single auction identified by
// its numeric code. The returned flag is true when the auction was newly
// created.
type ProcessAuctionPort interface {
	Execute(ctx context.Context, code string) (created bool, err error)
}
