package eaukcijafetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
)

// FetchAuctionDetails opens the detail page of one auction and walks its
// tabs, accumulating a single record. Field-level parse failures are
// logged and leave the field unset; structural failures (page or tab not
// rendering) abort the item.
func (a *EaukcijaFetcherAdapter) FetchAuctionDetails(ctx context.Context, code string) (*domain.AuctionRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "EaukcijaFetcherAdapter (FetchAuctionDetails)",
		"code":      code,
	})

	url := a.detailURL(code)
	if err := a.browser.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to open auction %s: %w", code, err)
	}
	if err := a.browser.WaitVisible(ctx, constants.SelAuctionInfo, constants.DetailWaitTimeout); err != nil {
		return nil, fmt.Errorf("auction %s detail page did not render: %w", code, err)
	}

	record := &domain.AuctionRecord{
		Code:   code,
		Status: domain.StatusConfirmationInProgress,
		URL:    url,
	}

	statusText, err := a.browser.Text(ctx, constants.SelAuctionStatus)
	if err != nil {
		return nil, fmt.Errorf("auction %s: failed to read status: %w", code, err)
	}
	if status, ok := mapStatus(statusText); ok {
		record.Status = status
	} else {
		logger.Warn("Unrecognized auction status text", port.Fields{"status": statusText})
	}

	title, err := a.browser.Text(ctx, constants.SelAuctionTitle)
	if err != nil {
		return nil, fmt.Errorf("auction %s: failed to read title: %w", code, err)
	}
	record.Title = strings.TrimSpace(title)

	stateLines, err := a.browser.Texts(ctx, constants.SelStateInfoLine)
	if err != nil {
		return nil, fmt.Errorf("auction %s: failed to read state info: %w", code, err)
	}
	for _, line := range stateLines {
		a.applyStateInfoLine(record, line, logger)
	}

	if err := a.walkTabs(ctx, record, logger); err != nil {
		return nil, fmt.Errorf("auction %s: %w", code, err)
	}

	return record, nil
}

// applyStateInfoLine parses one line of the state-info block (dates and
// prices). A value that fails to parse is logged and left unset.
func (a *EaukcijaFetcherAdapter) applyStateInfoLine(record *domain.AuctionRecord, line string, logger port.LoggerPort) {
	warnParse := func(field string, err error) {
		logger.Warn("Failed to parse state info value", port.Fields{"field": field, "error": err.Error()})
	}

	switch {
	case strings.Contains(line, constants.LabelPublicationDate):
		// The line reads "Датум објаве еАукције <date>", so the date
		// follows the marker word, not the label.
		if t, err := ParseSerbianDate(valueAfter(line, constants.DateValueMarker)); err != nil {
			warnParse("publication_date", err)
		} else {
			record.PublicationDate = &t
		}
	case strings.Contains(line, constants.LabelStartTime):
		if t, err := ParseSerbianDate(valueAfter(line, constants.DateValueMarker)); err != nil {
			warnParse("start_time", err)
		} else {
			record.StartTime = &t
		}
	case strings.Contains(line, constants.LabelEndTime):
		if t, err := ParseSerbianDate(valueAfter(line, constants.DateValueMarker)); err != nil {
			warnParse("end_time", err)
		} else {
			record.EndTime = &t
		}
	case strings.Contains(line, constants.LabelStartingPrice):
		if d, err := ParsePrice(valueAfter(line, constants.LabelStartingPrice)); err != nil {
			warnParse("starting_price", err)
		} else {
			record.StartingPrice = &d
		}
	case strings.Contains(line, constants.LabelEstimatedValue):
		if d, err := ParsePrice(valueAfter(line, constants.LabelEstimatedValue)); err != nil {
			warnParse("estimated_value", err)
		} else {
			record.EstimatedValue = &d
		}
	case strings.Contains(line, constants.LabelBiddingStep):
		if d, err := ParsePrice(valueAfter(line, constants.LabelBiddingStep)); err != nil {
			warnParse("bidding_step", err)
		} else {
			record.BiddingStep = &d
		}
	}
}

// walkTabs activates every detail tab in turn and extracts the content
// the tab carries.
func (a *EaukcijaFetcherAdapter) walkTabs(ctx context.Context, record *domain.AuctionRecord, logger port.LoggerPort) error {
	tabNames, err := a.browser.Texts(ctx, constants.SelTab)
	if err != nil {
		return fmt.Errorf("failed to list detail tabs: %w", err)
	}

	for i, rawName := range tabNames {
		name := strings.TrimSpace(rawName)

		if err := a.activateTab(ctx, i); err != nil {
			return fmt.Errorf("tab %q: %w", name, err)
		}
		if err := a.browser.WaitVisible(ctx, constants.SelActiveTabPane, a.waitTimeout); err != nil {
			return fmt.Errorf("tab %q pane did not render: %w", name, err)
		}

		switch name {
		case constants.TabDetails:
			if err := a.extractDetailsTab(ctx, record); err != nil {
				return err
			}
		case constants.TabLocation:
			if err := a.extractLocationTab(ctx, record); err != nil {
				return err
			}
		case constants.TabCategory:
			text, err := a.browser.Text(ctx, constants.SelActiveCategoryEl)
			if err != nil {
				return fmt.Errorf("failed to read category: %w", err)
			}
			record.Category = strings.TrimSpace(text)
		case constants.TabTags:
			names, err := a.browser.Texts(ctx, constants.SelActiveCategoryEl)
			if err != nil {
				return fmt.Errorf("failed to read tags: %w", err)
			}
			for _, name := range names {
				if tag := strings.TrimSpace(name); tag != "" {
					record.Tags = append(record.Tags, tag)
				}
			}
		case constants.TabExecutor:
			text, err := a.browser.Text(ctx, constants.SelActiveCategoryEl)
			if err != nil {
				return fmt.Errorf("failed to read executor: %w", err)
			}
			record.Executor = strings.TrimSpace(text)
		case constants.TabDocuments:
			names, err := a.browser.Texts(ctx, constants.SelActiveCategoryEl)
			if err != nil {
				return fmt.Errorf("failed to read documents: %w", err)
			}
			record.DocumentTitles = SplitPDFDocuments(strings.Join(names, " "))
		default:
			logger.Debug("Skipping unknown detail tab", port.Fields{"tab": name})
		}
	}

	return nil
}

func (a *EaukcijaFetcherAdapter) extractDetailsTab(ctx context.Context, record *domain.AuctionRecord) error {
	rows, err := a.browser.Texts(ctx, constants.SelActiveInfoRow)
	if err != nil {
		return fmt.Errorf("failed to read detail rows: %w", err)
	}
	for _, row := range rows {
		row = strings.TrimSpace(row)
		switch {
		case strings.Contains(row, constants.LabelDescription):
			record.Description = valueAfter(row, constants.LabelDescription)
		case strings.Contains(row, constants.LabelSaleNumber):
			record.SaleNumber = valueAfter(row, constants.LabelSaleNumber)
		}
	}
	return nil
}

func (a *EaukcijaFetcherAdapter) extractLocationTab(ctx context.Context, record *domain.AuctionRecord) error {
	rows, err := a.browser.Texts(ctx, constants.SelActiveInfoRow)
	if err != nil {
		return fmt.Errorf("failed to read location rows: %w", err)
	}
	loc := domain.LocationKey{}
	for _, row := range rows {
		row = strings.TrimSpace(row)
		switch {
		case strings.Contains(row, constants.LabelMunicipality):
			loc.Municipality = valueAfter(row, constants.LabelMunicipality)
		case strings.Contains(row, constants.LabelCity):
			loc.City = valueAfter(row, constants.LabelCity)
		case strings.Contains(row, constants.LabelCadastralMun):
			loc.CadastralMunicipality = valueAfter(row, constants.LabelCadastralMun)
		}
	}
	record.Location = &loc
	return nil
}

// activateTab clicks the i-th tab header with a bounded retry. The SPA
// sometimes swallows clicks while re-rendering, so a short delay follows
// each attempt before the pane is inspected.
func (a *EaukcijaFetcherAdapter) activateTab(ctx context.Context, index int) error {
	selector := fmt.Sprintf("%s:nth-child(%d)", constants.SelTab, index+1)

	var lastErr error
	for attempt := 1; attempt <= constants.TabClickRetries; attempt++ {
		if lastErr = a.browser.Click(ctx, selector); lastErr == nil {
			if err := sleepCtx(ctx, a.tabRetryDelay); err != nil {
				return err
			}
			return nil
		}
		if err := sleepCtx(ctx, a.tabRetryDelay); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: tab %d after %d attempts: %v",
		port.ErrTabUnavailable, index+1, constants.TabClickRetries, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
