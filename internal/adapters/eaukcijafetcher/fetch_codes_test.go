package eaukcijafetcher

import (
	"context"
	"testing"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchListingCodes(t *testing.T) {
	fb := &fakeBrowser{
		listTexts: map[string][]string{
			constants.SelAuctionListCode: {
				"Е-аукција 123456",
				" Е-аукција 789 ",
				"без броја",
			},
		},
	}
	adapter := newTestAdapter(t, fb)

	codes, err := adapter.FetchListingCodes(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.AuctionCode{
		{Label: "Е-аукција 123456", Numeric: "123456"},
		{Label: "Е-аукција 789", Numeric: "789"},
	}, codes)
	assert.Equal(t, []string{"https://eaukcija.test/#/?stranica=3"}, fb.navigated)
}

func TestFetchListingCodes_EmptyPageEndsListing(t *testing.T) {
	fb := &fakeBrowser{
		waitErr: map[string]error{constants.SelAuctionListItem: port.ErrWaitTimeout},
	}
	adapter := newTestAdapter(t, fb)

	_, err := adapter.FetchListingCodes(context.Background(), 7)
	assert.ErrorIs(t, err, port.ErrNoContent)
}

func TestReturnToListing(t *testing.T) {
	fb := &fakeBrowser{}
	adapter := newTestAdapter(t, fb)

	require.NoError(t, adapter.ReturnToListing(context.Background(), 2))
	assert.Equal(t, []string{"https://eaukcija.test/#/?stranica=2"}, fb.navigated)
}
