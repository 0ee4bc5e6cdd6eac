package usecases

import "context"

// ExpireAuctionsPort sweeps auctions whose end time has passed.
type ExpireAuctionsPort interface {
	Execute(ctx context.Context) (int64, error)
}
