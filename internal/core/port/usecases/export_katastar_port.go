package usecases

import "context"

// ExportKatastarPort collects the cadastral reference table and writes it
// to the given path.
type ExportKatastarPort interface {
	Execute(ctx context.Context, outputPath string) (int, error)
}
