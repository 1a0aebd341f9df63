package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/retailops/poextract/internal/model"
)

// FileSource reads templates from a JSON file holding an array of
// ParsingTemplate records. The file is read once at construction; CLI
// runs are short-lived, so there is no reload.
type FileSource struct {
	templates []model.ParsingTemplate
}

// NewFileSource loads a template file.
func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	var templates []model.ParsingTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parsing template file %s: %w", path, err)
	}

	return &FileSource{templates: templates}, nil
}

// ListActive returns the active templates in file order.
func (f *FileSource) ListActive(ctx context.Context) ([]model.ParsingTemplate, error) {
	return Static(f.templates).ListActive(ctx)
}
