package usecase

import (
	"context"
	"errors"
	"testing"

	"eaukcija-parser-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKatastarFetcher struct {
	refs []domain.MunicipalityReference
	err  error
}

func (f *fakeKatastarFetcher) FetchMunicipalities(ctx context.Context) ([]domain.MunicipalityReference, error) {
	return f.refs, f.err
}

type fakeReferenceWriter struct {
	path    string
	written []domain.MunicipalityReference
	err     error
}

func (w *fakeReferenceWriter) WriteReference(ctx context.Context, path string, refs []domain.MunicipalityReference) error {
	w.path = path
	w.written = refs
	return w.err
}

func TestExportKatastar(t *testing.T) {
	refs := []domain.MunicipalityReference{
		{Code: "80012", Name: "НОВИ САД", CadastralMunicipalities: []domain.CadastralMunicipality{
			{Code: "802034", Name: "НОВИ САД I"},
		}},
		{Code: "80438", Name: "БЕОГРАД"},
	}
	fetcher := &fakeKatastarFetcher{refs: refs}
	writer := &fakeReferenceWriter{}
	uc, err := NewExportKatastarUseCase(fetcher, writer)
	require.NoError(t, err)

	count, err := uc.Execute(context.Background(), "out.json")
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, "out.json", writer.path)
	assert.Equal(t, refs, writer.written)
}

func TestExportKatastarPropagatesFetchFailure(t *testing.T) {
	fetcher := &fakeKatastarFetcher{err: errors.New("registry unreachable")}
	writer := &fakeReferenceWriter{}
	uc, err := NewExportKatastarUseCase(fetcher, writer)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), "out.json")
	assert.Error(t, err)
	assert.Empty(t, writer.path)
}
