package port

import "context"

// EventListenerPort is an inbound adapter that drives the core from an
// external event source until the context is cancelled.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
