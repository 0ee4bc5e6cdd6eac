package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeListingFetcher serves scripted listing pages; pages absent from the
// map render empty.
type fakeListingFetcher struct {
	pages      map[int][]domain.AuctionCode
	pageErrs   map[int]error
	returns    int
	returnErr  error
	visitOrder []int
}

func (f *fakeListingFetcher) FetchListingCodes(ctx context.Context, page int) ([]domain.AuctionCode, error) {
	f.visitOrder = append(f.visitOrder, page)
	if err := f.pageErrs[page]; err != nil {
		return nil, err
	}
	codes, ok := f.pages[page]
	if !ok {
		return nil, fmt.Errorf("listing page %d: %w", page, port.ErrNoContent)
	}
	return codes, nil
}

func (f *fakeListingFetcher) FetchAuctionDetails(ctx context.Context, code string) (*domain.AuctionRecord, error) {
	return nil, errors.New("not used by the orchestrator")
}

func (f *fakeListingFetcher) ReturnToListing(ctx context.Context, page int) error {
	f.returns++
	return f.returnErr
}

// fakeProcessor reports created on first sight of a code and updated
// afterwards, like the real upsert does.
type fakeProcessor struct {
	seen      map[string]bool
	failCodes map[string]bool
	calls     []string
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{seen: map[string]bool{}, failCodes: map[string]bool{}}
}

func (p *fakeProcessor) Execute(ctx context.Context, code string) (bool, error) {
	p.calls = append(p.calls, code)
	if p.failCodes[code] {
		return false, errors.New("detail page exploded")
	}
	created := !p.seen[code]
	p.seen[code] = true
	return created, nil
}

func listingPage(codes ...string) []domain.AuctionCode {
	page := make([]domain.AuctionCode, 0, len(codes))
	for _, c := range codes {
		page = append(page, domain.AuctionCode{Label: "Е-аукција " + c, Numeric: c})
	}
	return page
}

func TestScrapeRunUntilListingEnds(t *testing.T) {
	fetcher := &fakeListingFetcher{pages: map[int][]domain.AuctionCode{
		1: listingPage("100", "101"),
		2: listingPage("102"),
	}}
	processor := newFakeProcessor()
	uc, err := NewScrapeAuctionsUseCase(fetcher, processor)
	require.NoError(t, err)

	stats, err := uc.Execute(context.Background(), domain.ScrapeCriteria{Pages: 0, StartPage: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Created)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 2, stats.PagesVisited)
	assert.Equal(t, 3, stats.Processed())
	assert.Equal(t, []int{1, 2, 3}, fetcher.visitOrder)
	assert.Equal(t, 3, fetcher.returns)
}

func TestScrapeRunIsIdempotent(t *testing.T) {
	fetcher := &fakeListingFetcher{pages: map[int][]domain.AuctionCode{
		1: listingPage("100", "101"),
	}}
	processor := newFakeProcessor()
	uc, err := NewScrapeAuctionsUseCase(fetcher, processor)
	require.NoError(t, err)

	first, err := uc.Execute(context.Background(), domain.ScrapeCriteria{Pages: 1, StartPage: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.Updated)

	second, err := uc.Execute(context.Background(), domain.ScrapeCriteria{Pages: 1, StartPage: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
}

func TestScrapeRunContainsItemFailures(t *testing.T) {
	fetcher := &fakeListingFetcher{pages: map[int][]domain.AuctionCode{
		1: listingPage("100", "666", "101"),
	}}
	processor := newFakeProcessor()
	processor.failCodes["666"] = true
	uc, err := NewScrapeAuctionsUseCase(fetcher, processor)
	require.NoError(t, err)

	stats, err := uc.Execute(context.Background(), domain.ScrapeCriteria{Pages: 1, StartPage: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Failed)
	// The failed item still triggers a return to the listing.
	assert.Equal(t, 3, fetcher.returns)
	assert.Equal(t, []string{"100", "666", "101"}, processor.calls)
}

func TestScrapeRunHonorsPageBudget(t *testing.T) {
	fetcher := &fakeListingFetcher{pages: map[int][]domain.AuctionCode{
		1: listingPage("100"),
		2: listingPage("101"),
		3: listingPage("102"),
	}}
	processor := newFakeProcessor()
	uc, err := NewScrapeAuctionsUseCase(fetcher, processor)
	require.NoError(t, err)

	stats, err := uc.Execute(context.Background(), domain.ScrapeCriteria{Pages: 2, StartPage: 2})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, fetcher.visitOrder)
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 2, stats.PagesVisited)
}

func TestScrapeRunSkipsBrokenListingPage(t *testing.T) {
	fetcher := &fakeListingFetcher{
		pages: map[int][]domain.AuctionCode{
			1: listingPage("100"),
			// page 2 breaks, page 3 would be next but the budget ends.
		},
		pageErrs: map[int]error{2: errors.New("portal hiccup")},
	}
	processor := newFakeProcessor()
	uc, err := NewScrapeAuctionsUseCase(fetcher, processor)
	require.NoError(t, err)

	stats, err := uc.Execute(context.Background(), domain.ScrapeCriteria{Pages: 2, StartPage: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 2, stats.PagesVisited)
}

func TestScrapeRunStopsOnCancelledContext(t *testing.T) {
	fetcher := &fakeListingFetcher{pages: map[int][]domain.AuctionCode{
		1: listingPage("100"),
	}}
	processor := newFakeProcessor()
	uc, err := NewScrapeAuctionsUseCase(fetcher, processor)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = uc.Execute(ctx, domain.ScrapeCriteria{Pages: 1, StartPage: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
