package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScrapeTaskEvent(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		body := []byte(`{"task_id":"6f1f9a1e-9a9c-4f8e-8f39-2b8f1a3c5d7e","pages":2,"start_page":1}`)
		assert.NoError(t, ValidateEvent("ScrapeTaskEvent", "1.0.0", body))
	})

	t.Run("task id alone is enough", func(t *testing.T) {
		body := []byte(`{"task_id":"6f1f9a1e-9a9c-4f8e-8f39-2b8f1a3c5d7e"}`)
		assert.NoError(t, ValidateEvent("ScrapeTaskEvent", "1.0.0", body))
	})

	t.Run("missing task id is rejected", func(t *testing.T) {
		body := []byte(`{"pages":2}`)
		assert.Error(t, ValidateEvent("ScrapeTaskEvent", "1.0.0", body))
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		body := []byte(`{"task_id":"6f1f9a1e-9a9c-4f8e-8f39-2b8f1a3c5d7e","headless":true}`)
		assert.Error(t, ValidateEvent("ScrapeTaskEvent", "1.0.0", body))
	})

	t.Run("negative pages is rejected", func(t *testing.T) {
		body := []byte(`{"task_id":"6f1f9a1e-9a9c-4f8e-8f39-2b8f1a3c5d7e","pages":-1}`)
		assert.Error(t, ValidateEvent("ScrapeTaskEvent", "1.0.0", body))
	})

	t.Run("broken json is rejected", func(t *testing.T) {
		body := []byte(`{"task_id":`)
		assert.Error(t, ValidateEvent("ScrapeTaskEvent", "1.0.0", body))
	})

	t.Run("unknown event type", func(t *testing.T) {
		assert.Error(t, ValidateEvent("UnknownEvent", "1.0.0", []byte(`{}`)))
	})
}
