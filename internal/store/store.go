// Package store provides read-only access to parsing templates. Templates
// are authored and owned elsewhere; the extraction core only consumes
// them, filtered by the active flag and ordered most recently updated
// first so recency decides selection ties.
package store

import (
	"context"

	"github.com/retailops/poextract/internal/model"
)

// TemplateSource lists the templates available for auto-selection.
type TemplateSource interface {
	ListActive(ctx context.Context) ([]model.ParsingTemplate, error)
}

// Static is a fixed in-memory template source, used by tests and by
// callers that already hold a template snapshot.
type Static []model.ParsingTemplate

func (s Static) ListActive(_ context.Context) ([]model.ParsingTemplate, error) {
	out := make([]model.ParsingTemplate, 0, len(s))
	for _, tpl := range s {
		if tpl.Active {
			out = append(out, tpl)
		}
	}
	return out, nil
}
