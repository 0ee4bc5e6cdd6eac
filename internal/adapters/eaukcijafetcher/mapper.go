package eaukcijafetcher

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// The portal renders dates with three-letter Serbian month abbreviations.
var serbianMonths = map[string]time.Month{
	"јан": time.January,
	"феб": time.February,
	"мар": time.March,
	"апр": time.April,
	"мај": time.May,
	"јун": time.June,
	"јул": time.July,
	"авг": time.August,
	"сеп": time.September,
	"окт": time.October,
	"нов": time.November,
	"дец": time.December,
}

// All portal timestamps are wall-clock times in the site's local zone.
var siteLocation = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Belgrade")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// ParsePrice parses a rendered currency amount like "1.234,56 РСД" into
// a fixed-point decimal: the currency marker is stripped, thousands dots
// removed and the comma decimal separator converted.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, "РСД", "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return d, nil
}

// ParseSerbianDate parses "DD. <month abbr>. YYYY." with an optional
// trailing "HH:MM" into a timestamp in the site's local zone. Time
// defaults to midnight when absent.
func ParseSerbianDate(raw string) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, ".")

	var parts []string
	for _, p := range strings.Split(s, ".") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 3 {
		return time.Time{}, fmt.Errorf("parse date %q: day, month and year segments are required", raw)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: bad day segment: %w", raw, err)
	}
	month, ok := serbianMonths[parts[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("parse date %q: unknown month abbreviation %q", raw, parts[1])
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: bad year segment: %w", raw, err)
	}

	hour, minute := 0, 0
	if len(parts) > 3 {
		hm := strings.SplitN(parts[3], ":", 2)
		if len(hm) != 2 {
			return time.Time{}, fmt.Errorf("parse date %q: bad time segment %q", raw, parts[3])
		}
		if hour, err = strconv.Atoi(strings.TrimSpace(hm[0])); err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: bad hour: %w", raw, err)
		}
		if minute, err = strconv.Atoi(strings.TrimSpace(hm[1])); err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: bad minute: %w", raw, err)
		}
	}

	return time.Date(year, month, day, hour, minute, 0, 0, siteLocation), nil
}

// SplitPDFDocuments splits the concatenated document-tab text into
// individual ".pdf" titles.
func SplitPDFDocuments(docText string) []string {
	var docs []string
	for _, d := range strings.Split(docText, ".pdf") {
		if d = strings.TrimSpace(d); d != "" {
			docs = append(docs, d+".pdf")
		}
	}
	return docs
}

// mapStatus maps the rendered status text to the lifecycle enum. The
// second return value is false for unrecognized text, which callers log;
// the record then keeps the confirmation-in-progress default.
func mapStatus(text string) (domain.AuctionStatus, bool) {
	switch strings.TrimSpace(text) {
	case constants.StatusTextConfirmationInProgress:
		return domain.StatusConfirmationInProgress, true
	case constants.StatusTextConfirmed:
		return domain.StatusConfirmed, true
	case constants.StatusTextExpired:
		return domain.StatusExpired, true
	}
	return domain.StatusConfirmationInProgress, false
}

// extractDigits keeps only the decimal digits of a listing label like
// "Е-аукција 123456".
func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// valueAfter returns the trimmed remainder of text after the first
// occurrence of marker.
func valueAfter(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+len(marker):])
}
