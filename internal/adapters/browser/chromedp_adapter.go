// Package browser implements the browser port on top of a headless
// Chrome session driven through the DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eaukcija-parser-service/internal/core/port"

	"github.com/chromedp/chromedp"
)

// ChromedpBrowserAdapter owns one Chrome tab for the lifetime of a run.
// All calls run actions against the same tab context, so callers must
// use it sequentially.
type ChromedpBrowserAdapter struct {
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
}

// NewChromedpBrowserAdapter starts a browser process and opens the tab.
// The parent context bounds the whole session lifetime.
func NewChromedpBrowserAdapter(ctx context.Context, headless bool) (*ChromedpBrowserAdapter, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// Forces the browser process to start now, so a broken Chrome install
	// fails here instead of on the first navigation.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("browser: failed to start chrome: %w", err)
	}

	return &ChromedpBrowserAdapter{
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
	}, nil
}

func (b *ChromedpBrowserAdapter) run(ctx context.Context, actions ...chromedp.Action) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return chromedp.Run(b.tabCtx, actions...)
}

func (b *ChromedpBrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := b.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("browser: navigate to %s: %w", url, err)
	}
	return nil
}

// WaitVisible polls for the selector within the timeout, mapping the
// deadline to ErrWaitTimeout so callers can branch on "not rendered".
func (b *ChromedpBrowserAdapter) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(b.tabCtx, timeout)
	defer cancel()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", port.ErrWaitTimeout, selector)
		}
		return fmt.Errorf("browser: wait for %s: %w", selector, err)
	}
	return nil
}

func (b *ChromedpBrowserAdapter) Text(ctx context.Context, selector string) (string, error) {
	var text string
	if err := b.run(ctx, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("browser: read text of %s: %w", selector, err)
	}
	return text, nil
}

func (b *ChromedpBrowserAdapter) Texts(ctx context.Context, selector string) ([]string, error) {
	script := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(function(el) { return el.innerText; })`,
		selector,
	)
	var texts []string
	if err := b.run(ctx, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, fmt.Errorf("browser: read texts of %s: %w", selector, err)
	}
	return texts, nil
}

func (b *ChromedpBrowserAdapter) Click(ctx context.Context, selector string) error {
	if err := b.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("browser: click %s: %w", selector, err)
	}
	return nil
}

func (b *ChromedpBrowserAdapter) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := b.run(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("browser: read location: %w", err)
	}
	return url, nil
}

// Close shuts the tab down and kills the browser process.
func (b *ChromedpBrowserAdapter) Close() error {
	b.tabCancel()
	b.allocCancel()
	return nil
}
