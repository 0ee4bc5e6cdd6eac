// Package filestorage writes collected reference data to local files.
package filestorage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
)

// JSONReferenceWriter implements ReferenceWriterPort as an indented JSON
// dump. HTML escaping is disabled so Cyrillic names stay readable.
type JSONReferenceWriter struct{}

func NewJSONReferenceWriter() *JSONReferenceWriter {
	return &JSONReferenceWriter{}
}

func (w *JSONReferenceWriter) WriteReference(ctx context.Context, path string, refs []domain.MunicipalityReference) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "JSONReferenceWriter",
		"path":      path,
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("reference writer: failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(refs); err != nil {
		return fmt.Errorf("reference writer: failed to encode reference data: %w", err)
	}

	logger.Info("Reference file written", port.Fields{"municipalities": len(refs)})
	return nil
}
