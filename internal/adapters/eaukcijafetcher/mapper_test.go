package eaukcijafetcher

import (
	"testing"
	"time"

	"eaukcija-parser-service/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"thousands and decimals", "1.234.567,89 РСД", "1234567.89"},
		{"round amount", "1.000,00 РСД", "1000"},
		{"no currency marker", "500,50", "500.5"},
		{"no separators", "42 РСД", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}

	t.Run("garbage errors", func(t *testing.T) {
		_, err := ParsePrice("није број")
		assert.Error(t, err)
	})
}

func TestParseSerbianDate(t *testing.T) {
	t.Run("date only defaults to midnight", func(t *testing.T) {
		got, err := ParseSerbianDate("23. јан. 2024.")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, time.January, 23, 0, 0, 0, 0, siteLocation)))
	})

	t.Run("date with time", func(t *testing.T) {
		got, err := ParseSerbianDate("05. нов. 2023. 14:30")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2023, time.November, 5, 14, 30, 0, 0, siteLocation)))
	})

	t.Run("uppercase month is accepted", func(t *testing.T) {
		got, err := ParseSerbianDate("01. ДЕЦ. 2024.")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, siteLocation)))
	})

	t.Run("unknown month errors", func(t *testing.T) {
		_, err := ParseSerbianDate("05. xyz. 2023.")
		assert.Error(t, err)
	})

	t.Run("missing segments error", func(t *testing.T) {
		_, err := ParseSerbianDate("05. јан.")
		assert.Error(t, err)
	})

	t.Run("broken time segment errors", func(t *testing.T) {
		_, err := ParseSerbianDate("05. јан. 2023. 1430")
		assert.Error(t, err)
	})
}

func TestSplitPDFDocuments(t *testing.T) {
	docs := SplitPDFDocuments("Оглас о продаји.pdf Закључак.pdf")
	assert.Equal(t, []string{"Оглас о продаји.pdf", "Закључак.pdf"}, docs)

	assert.Empty(t, SplitPDFDocuments(""))
	assert.Empty(t, SplitPDFDocuments("   "))
}

func TestMapStatus(t *testing.T) {
	status, ok := mapStatus(" Потврђено ")
	assert.True(t, ok)
	assert.Equal(t, domain.StatusConfirmed, status)

	status, ok = mapStatus("Потврђивање у току")
	assert.True(t, ok)
	assert.Equal(t, domain.StatusConfirmationInProgress, status)

	status, ok = mapStatus("Истекла")
	assert.True(t, ok)
	assert.Equal(t, domain.StatusExpired, status)

	status, ok = mapStatus("нешто ново")
	assert.False(t, ok)
	assert.Equal(t, domain.StatusConfirmationInProgress, status)
}

func TestExtractDigits(t *testing.T) {
	assert.Equal(t, "123456", extractDigits("Е-аукција 123456"))
	assert.Equal(t, "", extractDigits("без броја"))
}

func TestValueAfter(t *testing.T) {
	assert.Equal(t, "Нови Сад", valueAfter("Општина: Нови Сад", "Општина:"))
	assert.Equal(t, "", valueAfter("нема маркера", "Општина:"))
}
