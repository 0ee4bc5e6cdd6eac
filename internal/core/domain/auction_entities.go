package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction as shown on the portal.
type AuctionStatus string

const (
	StatusConfirmationInProgress AuctionStatus = "CONFIRMATION_IN_PROGRESS"
	StatusConfirmed              AuctionStatus = "CONFIRMED"
	StatusExpired                AuctionStatus = "EXPIRED"
)

// AuctionCode is one entry of a listing page: the visible label and the
// numeric code extracted from it. The numeric code keys the detail URL
// and the upsert.
type AuctionCode struct {
	Label   string
	Numeric string
}

// LocationKey is the natural identity of a location: the
// municipality/city/cadastral-municipality triple, in the source script.
type LocationKey struct {
	Municipality          string
	City                  string
	CadastralMunicipality string
}

// AuctionRecord is a fully extracted auction, ready for the storage port.
// Side entities are referenced by their natural keys (Cyrillic source
// titles); the storage layer resolves or creates them.
//
// Pointer fields are nil when the corresponding text failed to parse;
// parse failures are recoverable and must not abort the item.
type AuctionRecord struct {
	Code            string
	Status          AuctionStatus
	Title           string
	URL             string
	PublicationDate *time.Time
	StartTime       *time.Time
	EndTime         *time.Time
	StartingPrice   *decimal.Decimal
	EstimatedValue  *decimal.Decimal
	BiddingStep     *decimal.Decimal
	Description     string
	SaleNumber      string
	Category        string
	Executor        string
	Location        *LocationKey
	Tags            []string
	DocumentTitles  []string
}

// ScrapeCriteria configures one run of the listing orchestrator.
type ScrapeCriteria struct {
	// Pages is the page budget; 0 means run until an empty listing page.
	Pages int
	// StartPage is the first listing page to visit; pages are 1-based.
	StartPage int
}

// ScrapeStats are the per-run counters. They are local to a single run.
type ScrapeStats struct {
	Created      int
	Updated      int
	Failed       int
	PagesVisited int
}

// Processed returns the number of auctions that reached the storage layer.
func (s ScrapeStats) Processed() int {
	return s.Created + s.Updated
}
