package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffDocumentTitles(t *testing.T) {
	t.Run("add and remove", func(t *testing.T) {
		diff := DiffDocumentTitles(
			[]string{"Оглас.pdf", "Закључак.pdf"},
			[]string{"Закључак.pdf", "Записник.pdf"},
		)
		assert.Equal(t, []string{"Записник.pdf"}, diff.ToAdd)
		assert.Equal(t, []string{"Оглас.pdf"}, diff.ToRemove)
	})

	t.Run("identical sets touch nothing", func(t *testing.T) {
		diff := DiffDocumentTitles([]string{"Оглас.pdf"}, []string{"Оглас.pdf"})
		assert.Empty(t, diff.ToAdd)
		assert.Empty(t, diff.ToRemove)
	})

	t.Run("fresh auction adds everything", func(t *testing.T) {
		diff := DiffDocumentTitles(nil, []string{"Оглас.pdf", "Закључак.pdf"})
		assert.Equal(t, []string{"Оглас.pdf", "Закључак.pdf"}, diff.ToAdd)
		assert.Empty(t, diff.ToRemove)
	})

	t.Run("vanished set removes everything", func(t *testing.T) {
		diff := DiffDocumentTitles([]string{"Оглас.pdf"}, nil)
		assert.Empty(t, diff.ToAdd)
		assert.Equal(t, []string{"Оглас.pdf"}, diff.ToRemove)
	})
}
