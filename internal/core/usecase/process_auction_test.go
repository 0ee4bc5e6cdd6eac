package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"eaukcija-parser-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDetailFetcher serves one scripted record per code.
type fakeDetailFetcher struct {
	records map[string]*domain.AuctionRecord
}

func (f *fakeDetailFetcher) FetchListingCodes(ctx context.Context, page int) ([]domain.AuctionCode, error) {
	return nil, errors.New("not used")
}

func (f *fakeDetailFetcher) FetchAuctionDetails(ctx context.Context, code string) (*domain.AuctionRecord, error) {
	record, ok := f.records[code]
	if !ok {
		return nil, errors.New("detail page did not render")
	}
	return record, nil
}

func (f *fakeDetailFetcher) ReturnToListing(ctx context.Context, page int) error { return nil }

// fakeStorage upserts into a map keyed by auction code.
type fakeStorage struct {
	auctions   map[string]domain.AuctionRecord
	upsertErr  error
	expired    int64
	expireErr  error
	expireCuts []time.Time
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{auctions: map[string]domain.AuctionRecord{}}
}

func (s *fakeStorage) UpsertAuction(ctx context.Context, record domain.AuctionRecord) (bool, error) {
	if s.upsertErr != nil {
		return false, s.upsertErr
	}
	_, exists := s.auctions[record.Code]
	s.auctions[record.Code] = record
	return !exists, nil
}

func (s *fakeStorage) ExpireFinished(ctx context.Context, now time.Time) (int64, error) {
	s.expireCuts = append(s.expireCuts, now)
	if s.expireErr != nil {
		return 0, s.expireErr
	}
	return s.expired, nil
}

func TestProcessAuctionCreatesThenUpdates(t *testing.T) {
	record := &domain.AuctionRecord{
		Code:     "123456",
		Status:   domain.StatusConfirmed,
		Title:    "Стан у Београду",
		Location: &domain.LocationKey{Municipality: "Нови Сад"},
	}
	fetcher := &fakeDetailFetcher{records: map[string]*domain.AuctionRecord{"123456": record}}
	storage := newFakeStorage()
	uc, err := NewProcessAuctionUseCase(fetcher, storage)
	require.NoError(t, err)

	created, err := uc.Execute(context.Background(), "123456")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.Execute(context.Background(), "123456")
	require.NoError(t, err)
	assert.False(t, created)

	stored := storage.auctions["123456"]
	assert.Equal(t, "Стан у Београду", stored.Title)
}

func TestProcessAuctionPropagatesFetchFailure(t *testing.T) {
	fetcher := &fakeDetailFetcher{records: map[string]*domain.AuctionRecord{}}
	storage := newFakeStorage()
	uc, err := NewProcessAuctionUseCase(fetcher, storage)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), "404")
	assert.Error(t, err)
	assert.Empty(t, storage.auctions)
}

func TestProcessAuctionPropagatesStorageFailure(t *testing.T) {
	record := &domain.AuctionRecord{Code: "123456", Location: &domain.LocationKey{}}
	fetcher := &fakeDetailFetcher{records: map[string]*domain.AuctionRecord{"123456": record}}
	storage := newFakeStorage()
	storage.upsertErr = errors.New("db down")
	uc, err := NewProcessAuctionUseCase(fetcher, storage)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), "123456")
	assert.Error(t, err)
}
