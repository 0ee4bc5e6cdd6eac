// One-off export of the cadastral municipality reference table to a
// local JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eaukcija-parser-service/internal/adapters/filestorage"
	"eaukcija-parser-service/internal/adapters/katastarfetcher"
	logger_adapter "eaukcija-parser-service/internal/adapters/logger"
	"eaukcija-parser-service/internal/constants"
	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/usecase"
)

func main() {
	defaultOut := fmt.Sprintf("katastar_reference_%s.json", time.Now().Format("2006-01-02_15-04-05"))
	out := flag.String("out", defaultOut, "output file path")
	baseURL := flag.String("base-url", constants.KatastarBaseURL, "cadastral registry page URL")
	flag.Parse()

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    slog.LevelInfo,
		UseColor: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	exportUseCase, err := usecase.NewExportKatastarUseCase(
		katastarfetcher.NewKatastarFetcherAdapter(*baseURL),
		filestorage.NewJSONReferenceWriter(),
	)
	if err != nil {
		log.Fatalf("failed to initialize export: %v", err)
	}

	count, err := exportUseCase.Execute(ctx, *out)
	if err != nil {
		logger.Error("Cadastral reference export failed", err, nil)
		os.Exit(1)
	}

	logger.Info("Export finished", port.Fields{"municipalities": count, "path": *out})
}
