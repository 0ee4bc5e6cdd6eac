package port

import (
	"context"

	"eaukcija-parser-service/internal/core/domain"
)

// KatastarFetcherPort collects the municipality / cadastral-municipality
// reference table from the public cadastral registry.
type KatastarFetcherPort interface {
	FetchMunicipalities(ctx context.Context) ([]domain.MunicipalityReference, error)
}

// ReferenceWriterPort writes collected reference data to a local
// artifact.
type ReferenceWriterPort interface {
	WriteReference(ctx context.Context, path string, refs []domain.MunicipalityReference) error
}
