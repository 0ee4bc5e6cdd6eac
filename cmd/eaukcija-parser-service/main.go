// One-shot scrape of the auction portal: walks the listing pages,
// upserts every auction found and optionally sweeps expired auctions
// afterwards.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eaukcija-parser-service/internal"
	"eaukcija-parser-service/internal/adapters/browser"
	"eaukcija-parser-service/internal/adapters/eaukcijafetcher"
	postgres_adapter "eaukcija-parser-service/internal/adapters/postgres"
	"eaukcija-parser-service/internal/configs"
	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/usecase"
	"eaukcija-parser-service/pkg/postgres"
)

func main() {
	pages := flag.Int("pages", 2, "number of listing pages to scrape; 0 runs until the listing ends")
	startPage := flag.Int("start-page", 1, "first listing page to visit")
	headless := flag.Bool("headless", true, "run the browser headless")
	expire := flag.Bool("expire", true, "sweep expired auctions after the scrape")
	flag.Parse()

	appConfig, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("error loading application configuration: %v", err)
	}
	appConfig.Eaukcija.Headless = *headless

	logger, fluentClient, err := internal.BuildLogger(appConfig)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	if fluentClient != nil {
		defer fluentClient.Close()
	}
	logger = logger.WithFields(port.Fields{"app": appConfig.AppName})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	if err := run(ctx, appConfig, logger, domain.ScrapeCriteria{Pages: *pages, StartPage: *startPage}, *expire); err != nil {
		logger.Error("Scrape run failed", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, appConfig *configs.AppConfig, logger port.LoggerPort, criteria domain.ScrapeCriteria, expire bool) error {
	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	browserAdapter, err := browser.NewChromedpBrowserAdapter(ctx, appConfig.Eaukcija.Headless)
	if err != nil {
		return err
	}
	defer browserAdapter.Close()

	fetcherAdapter, err := eaukcijafetcher.NewEaukcijaFetcherAdapter(browserAdapter, appConfig.Eaukcija.BaseURL)
	if err != nil {
		return err
	}
	storageAdapter, err := postgres_adapter.NewAuctionStorageAdapter(dbPool)
	if err != nil {
		return err
	}

	processUseCase, err := usecase.NewProcessAuctionUseCase(fetcherAdapter, storageAdapter)
	if err != nil {
		return err
	}
	scrapeUseCase, err := usecase.NewScrapeAuctionsUseCase(fetcherAdapter, processUseCase)
	if err != nil {
		return err
	}

	stats, err := scrapeUseCase.Execute(ctx, criteria)
	if err != nil {
		return err
	}

	logger.Info("Scrape summary", port.Fields{
		"pages_visited": stats.PagesVisited,
		"created":       stats.Created,
		"updated":       stats.Updated,
		"failed":        stats.Failed,
		"processed":     stats.Processed(),
	})

	if expire {
		expireUseCase, err := usecase.NewExpireAuctionsUseCase(storageAdapter)
		if err != nil {
			return err
		}
		expired, err := expireUseCase.Execute(ctx)
		if err != nil {
			return err
		}
		logger.Info("Expiry sweep finished", port.Fields{"expired": expired})
	}

	return nil
}
