package port

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned by WaitVisible when the selector did not
// render within the given timeout.
var ErrWaitTimeout = errors.New("browser: wait for selector timed out")

// BrowserPort is a single headless-browser session shared sequentially by
// the whole run. The driver behind it is a black box; the pipeline only
// needs navigation, readiness polling, text extraction and clicks.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until at least one element matching the CSS
	// selector is rendered, or the timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Text returns the visible text of the first element matching the
	// selector.
	Text(ctx context.Context, selector string) (string, error)

	// Texts returns the visible text of every element matching the
	// selector, in document order.
	Texts(ctx context.Context, selector string) ([]string, error)

	Click(ctx context.Context, selector string) error

	CurrentURL(ctx context.Context) (string, error)

	Close() error
}
