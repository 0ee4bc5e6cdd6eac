// Package eaukcijafetcher drives the shared browser session through the
// auction portal's listing and detail pages and maps the rendered text
// into domain records.
package eaukcijafetcher

import (
	"fmt"
	"time"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/core/port"
)

// EaukcijaFetcherAdapter implements AuctionFetcherPort over a browser
// session. The session is shared sequentially; the adapter never runs
// two navigations concurrently.
type EaukcijaFetcherAdapter struct {
	browser       port.BrowserPort
	baseURL       string
	waitTimeout   time.Duration
	tabRetryDelay time.Duration
}

func NewEaukcijaFetcherAdapter(browser port.BrowserPort, baseURL string) (*EaukcijaFetcherAdapter, error) {
	if browser == nil {
		return nil, fmt.Errorf("eaukcija fetcher: browser cannot be nil")
	}
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}
	return &EaukcijaFetcherAdapter{
		browser:       browser,
		baseURL:       baseURL,
		waitTimeout:   constants.DefaultWaitTimeout,
		tabRetryDelay: constants.TabClickRetryDelay,
	}, nil
}

func (a *EaukcijaFetcherAdapter) listingURL(page int) string {
	return fmt.Sprintf(constants.ListingPageFragment, a.baseURL, page)
}

func (a *EaukcijaFetcherAdapter) detailURL(code string) string {
	return fmt.Sprintf(constants.AuctionDetailFragment, a.baseURL, code)
}
