package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireAuctionsUsesCurrentTime(t *testing.T) {
	storage := newFakeStorage()
	storage.expired = 4
	uc, err := NewExpireAuctionsUseCase(storage)
	require.NoError(t, err)

	fixed := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	expired, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), expired)
	require.Len(t, storage.expireCuts, 1)
	assert.True(t, storage.expireCuts[0].Equal(fixed))
}

func TestExpireAuctionsPropagatesStorageFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.expireErr = errors.New("db down")
	uc, err := NewExpireAuctionsUseCase(storage)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background())
	assert.Error(t, err)
}
