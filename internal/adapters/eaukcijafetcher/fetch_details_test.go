package eaukcijafetcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrowser is a scripted stand-in for the browser session. Clicking a
// tab header switches the active tab, which changes what the
// active-pane selectors return.
type fakeBrowser struct {
	waitErr    map[string]error
	texts      map[string]string
	listTexts  map[string][]string
	tabs       []string
	tabRows    map[int][]string
	tabNames   map[int][]string
	clickFails map[string]int

	active    int
	navigated []string
}

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakeBrowser) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return f.waitErr[selector]
}

func (f *fakeBrowser) Text(ctx context.Context, selector string) (string, error) {
	if selector == constants.SelActiveCategoryEl {
		if names := f.tabNames[f.active]; len(names) > 0 {
			return names[0], nil
		}
		return "", errors.New("no category-name element in active pane")
	}
	if v, ok := f.texts[selector]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no element matches %s", selector)
}

func (f *fakeBrowser) Texts(ctx context.Context, selector string) ([]string, error) {
	switch selector {
	case constants.SelTab:
		return f.tabs, nil
	case constants.SelActiveInfoRow:
		return f.tabRows[f.active], nil
	case constants.SelActiveCategoryEl:
		return f.tabNames[f.active], nil
	}
	return f.listTexts[selector], nil
}

func (f *fakeBrowser) Click(ctx context.Context, selector string) error {
	if n := f.clickFails[selector]; n > 0 {
		f.clickFails[selector] = n - 1
		return errors.New("click intercepted by re-render")
	}
	idxStr := strings.TrimSuffix(strings.TrimPrefix(selector, constants.SelTab+":nth-child("), ")")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return fmt.Errorf("unexpected click selector %s", selector)
	}
	f.active = idx - 1
	return nil
}

func (f *fakeBrowser) CurrentURL(ctx context.Context) (string, error) {
	if len(f.navigated) == 0 {
		return "", nil
	}
	return f.navigated[len(f.navigated)-1], nil
}

func (f *fakeBrowser) Close() error { return nil }

func newTestAdapter(t *testing.T, fb *fakeBrowser) *EaukcijaFetcherAdapter {
	t.Helper()
	adapter, err := NewEaukcijaFetcherAdapter(fb, "https://eaukcija.test")
	require.NoError(t, err)
	adapter.tabRetryDelay = time.Millisecond
	return adapter
}

func allTabsBrowser() *fakeBrowser {
	return &fakeBrowser{
		texts: map[string]string{
			constants.SelAuctionStatus: "Потврђено",
			constants.SelAuctionTitle:  "  Стан у Београду  ",
		},
		listTexts: map[string][]string{
			constants.SelStateInfoLine: {
				"Датум објаве еАукције 01. јан. 2024.",
				"Почетак еАукције 10. јан. 2024. 09:00",
				"Крај еАукције 20. јан. 2024. 09:00",
				"Почетна цена 1.000.000,00 РСД",
				"Процењена вредност 2.000.000,00 РСД",
				"Лицитациони корак 50.000,00 РСД",
			},
		},
		tabs: []string{
			constants.TabDetails, constants.TabLocation, constants.TabCategory,
			constants.TabTags, constants.TabExecutor, constants.TabDocuments,
		},
		// Only the details and location panes carry info-label rows; the
		// category, tags, executor and documents panes render their
		// values as category-name elements.
		tabRows: map[int][]string{
			0: {"Опис: Двособан стан", "Продаја: 2/2024"},
			1: {"Општина: Нови Сад", "Место: Нови Сад", "Катастарска општина: Нови Сад I"},
		},
		tabNames: map[int][]string{
			2: {"Непокретности"},
			3: {"стан", "некретнине", "  "},
			4: {"Јавни извршитељ Петар Петровић"},
			5: {"Оглас о продаји.pdf Закључак.pdf"},
		},
		clickFails: map[string]int{},
	}
}

func TestFetchAuctionDetails(t *testing.T) {
	fb := allTabsBrowser()
	adapter := newTestAdapter(t, fb)

	record, err := adapter.FetchAuctionDetails(context.Background(), "123456")
	require.NoError(t, err)

	assert.Equal(t, "123456", record.Code)
	assert.Equal(t, "https://eaukcija.test/#/aukcije/123456", record.URL)
	assert.Equal(t, "Стан у Београду", record.Title)
	assert.Equal(t, "CONFIRMED", string(record.Status))

	require.NotNil(t, record.PublicationDate)
	assert.True(t, record.PublicationDate.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, siteLocation)))
	require.NotNil(t, record.StartTime)
	assert.True(t, record.StartTime.Equal(time.Date(2024, time.January, 10, 9, 0, 0, 0, siteLocation)))
	require.NotNil(t, record.EndTime)
	assert.True(t, record.EndTime.Equal(time.Date(2024, time.January, 20, 9, 0, 0, 0, siteLocation)))

	require.NotNil(t, record.StartingPrice)
	assert.Equal(t, "1000000", record.StartingPrice.String())
	require.NotNil(t, record.EstimatedValue)
	assert.Equal(t, "2000000", record.EstimatedValue.String())
	require.NotNil(t, record.BiddingStep)
	assert.Equal(t, "50000", record.BiddingStep.String())

	assert.Equal(t, "Двособан стан", record.Description)
	assert.Equal(t, "2/2024", record.SaleNumber)
	assert.Equal(t, "Непокретности", record.Category)
	assert.Equal(t, "Јавни извршитељ Петар Петровић", record.Executor)

	require.NotNil(t, record.Location)
	assert.Equal(t, "Нови Сад", record.Location.Municipality)
	assert.Equal(t, "Нови Сад", record.Location.City)
	assert.Equal(t, "Нови Сад I", record.Location.CadastralMunicipality)

	assert.Equal(t, []string{"стан", "некретнине"}, record.Tags)
	assert.Equal(t, []string{"Оглас о продаји.pdf", "Закључак.pdf"}, record.DocumentTitles)
}

func TestFetchAuctionDetails_BrokenFieldIsRecovered(t *testing.T) {
	fb := allTabsBrowser()
	fb.listTexts[constants.SelStateInfoLine] = []string{
		"Датум објаве еАукције 99. xyz. 2024.",
		"Почетна цена 1.000,00 РСД",
	}
	adapter := newTestAdapter(t, fb)

	record, err := adapter.FetchAuctionDetails(context.Background(), "123456")
	require.NoError(t, err)

	assert.Nil(t, record.PublicationDate)
	require.NotNil(t, record.StartingPrice)
	assert.Equal(t, "1000", record.StartingPrice.String())
}

func TestFetchAuctionDetails_TabClickRetried(t *testing.T) {
	fb := allTabsBrowser()
	secondTab := fmt.Sprintf("%s:nth-child(2)", constants.SelTab)
	fb.clickFails[secondTab] = 2
	adapter := newTestAdapter(t, fb)

	record, err := adapter.FetchAuctionDetails(context.Background(), "123456")
	require.NoError(t, err)
	require.NotNil(t, record.Location)
	assert.Equal(t, "Нови Сад", record.Location.Municipality)
}

func TestFetchAuctionDetails_TabGivesUpAfterRetries(t *testing.T) {
	fb := allTabsBrowser()
	secondTab := fmt.Sprintf("%s:nth-child(2)", constants.SelTab)
	fb.clickFails[secondTab] = constants.TabClickRetries
	adapter := newTestAdapter(t, fb)

	_, err := adapter.FetchAuctionDetails(context.Background(), "123456")
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrTabUnavailable)
}

func TestFetchAuctionDetails_PageNotRendering(t *testing.T) {
	fb := allTabsBrowser()
	fb.waitErr = map[string]error{constants.SelAuctionInfo: port.ErrWaitTimeout}
	adapter := newTestAdapter(t, fb)

	_, err := adapter.FetchAuctionDetails(context.Background(), "123456")
	assert.Error(t, err)
}
