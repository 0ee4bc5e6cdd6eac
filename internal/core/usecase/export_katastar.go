package usecase

import (
	"context"
	"fmt"

	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/core/port/usecases"
)

// ExportKatastarUseCase collects the cadastral reference table and dumps
// it to a local file.
type ExportKatastarUseCase struct {
	fetcher port.KatastarFetcherPort
	writer  port.ReferenceWriterPort
}

var _ usecases.ExportKatastarPort = (*ExportKatastarUseCase)(nil)

func NewExportKatastarUseCase(fetcher port.KatastarFetcherPort, writer port.ReferenceWriterPort) (*ExportKatastarUseCase, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("katastar usecase: fetcher cannot be nil")
	}
	if writer == nil {
		return nil, fmt.Errorf("katastar usecase: writer cannot be nil")
	}
	return &ExportKatastarUseCase{fetcher: fetcher, writer: writer}, nil
}

func (uc *ExportKatastarUseCase) Execute(ctx context.Context, outputPath string) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ExportKatastarUseCase",
	})

	refs, err := uc.fetcher.FetchMunicipalities(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to collect cadastral reference: %w", err)
	}

	if err := uc.writer.WriteReference(ctx, outputPath, refs); err != nil {
		return 0, fmt.Errorf("failed to write cadastral reference: %w", err)
	}

	logger.Info("Cadastral reference exported", port.Fields{
		"municipalities": len(refs),
		"path":           outputPath,
	})
	return len(refs), nil
}
