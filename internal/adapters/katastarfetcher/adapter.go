// Package katastarfetcher scrapes the municipality and cadastral
// municipality reference table from the public cadastral registry.
package katastarfetcher

import (
	"context"
	"fmt"
	"strings"

	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"

	"github.com/gocolly/colly/v2"
)

// KatastarFetcherAdapter implements KatastarFetcherPort against the
// registry's WebForms page.
type KatastarFetcherAdapter struct {
	baseURL string
}

func NewKatastarFetcherAdapter(baseURL string) *KatastarFetcherAdapter {
	if baseURL == "" {
		baseURL = constants.KatastarBaseURL
	}
	return &KatastarFetcherAdapter{baseURL: baseURL}
}

type municipalityOption struct {
	code string
	name string
}

// FetchMunicipalities loads the registry page once to collect the
// municipality dropdown and the page's hidden postback state, then posts
// back per municipality to read its cadastral-municipality grid. A
// municipality whose postback fails is skipped with a warning; the run
// continues.
func (a *KatastarFetcherAdapter) FetchMunicipalities(ctx context.Context) ([]domain.MunicipalityReference, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KatastarFetcherAdapter",
	})

	var options []municipalityOption
	hidden := make(map[string]string)

	c := colly.NewCollector(colly.AllowURLRevisit())

	c.OnHTML("select#"+constants.KatastarMunicipalityDrop+" option", func(e *colly.HTMLElement) {
		code := strings.TrimSpace(e.Attr("value"))
		name := strings.TrimSpace(e.Text)
		if code == "" || code == "0" || name == "" {
			return
		}
		options = append(options, municipalityOption{code: code, name: name})
	})
	c.OnHTML("input[type='hidden']", func(e *colly.HTMLElement) {
		if name := e.Attr("name"); name != "" {
			hidden[name] = e.Attr("value")
		}
	})

	var visitErr error
	c.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	if err := c.Visit(a.baseURL); err != nil {
		return nil, fmt.Errorf("katastar: failed to load registry page: %w", err)
	}
	if visitErr != nil {
		return nil, fmt.Errorf("katastar: registry page request failed: %w", visitErr)
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("katastar: no municipalities found in dropdown")
	}

	logger.Info("Municipality dropdown collected", port.Fields{"municipalities": len(options)})

	refs := make([]domain.MunicipalityReference, 0, len(options))
	for _, opt := range options {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cadastral, err := a.fetchCadastralGrid(c, hidden, opt.code)
		if err != nil {
			logger.Warn("Skipping municipality, postback failed", port.Fields{
				"code":  opt.code,
				"name":  opt.name,
				"error": err.Error(),
			})
			continue
		}

		refs = append(refs, domain.MunicipalityReference{
			Code:                    opt.code,
			Name:                    opt.name,
			CadastralMunicipalities: cadastral,
		})
	}

	return refs, nil
}

// fetchCadastralGrid posts the municipality selection back and parses the
// resulting grid. Header rows carry th cells and fall through the length
// guard.
func (a *KatastarFetcherAdapter) fetchCadastralGrid(base *colly.Collector, hidden map[string]string, code string) ([]domain.CadastralMunicipality, error) {
	var rows []domain.CadastralMunicipality

	c := base.Clone()
	c.OnHTML("table#"+constants.KatastarGridView+" tr", func(e *colly.HTMLElement) {
		cells := e.ChildTexts("td")
		if len(cells) < 2 {
			return
		}
		rows = append(rows, domain.CadastralMunicipality{
			Code: strings.TrimSpace(cells[0]),
			Name: strings.TrimSpace(cells[1]),
		})
	})

	var postErr error
	c.OnError(func(_ *colly.Response, err error) {
		postErr = err
	})

	form := map[string]string{
		"__EVENTTARGET":            constants.KatastarDropField,
		"__EVENTARGUMENT":          "",
		constants.KatastarDropField: code,
	}
	for k, v := range hidden {
		form[k] = v
	}

	if err := c.Post(a.baseURL, form); err != nil {
		return nil, err
	}
	if postErr != nil {
		return nil, postErr
	}
	return rows, nil
}
