package port

import (
	"context"
	"time"

	"eaukcija-parser-service/internal/core/domain"
)

// AuctionStoragePort persists extracted auctions. Implementations must be
// idempotent under re-scrapes: the auction code is the upsert key, side
// entities are resolved by natural key and never duplicated, and the
// document set is reconciled rather than appended to. One upsert is one
// transaction; no transaction spans multiple auctions.
type AuctionStoragePort interface {
	// UpsertAuction creates or refreshes the auction identified by
	// record.Code. The returned flag is true when a new row was created.
	UpsertAuction(ctx context.Context, record domain.AuctionRecord) (created bool, err error)

	// ExpireFinished marks every non-expired auction whose end time has
	// passed as expired and returns the number of rows affected.
	ExpireFinished(ctx context.Context, now time.Time) (int64, error)
}
