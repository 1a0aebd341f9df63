package server

import (
	"github.com/retailops/poextract/internal/model"
)

// ExtractResponse is the response for extract and template-test endpoints
type ExtractResponse struct {
	Result       *model.ExtractionResult `json:"result"`
	Method       string                  `json:"method"`
	Template     string                  `json:"template,omitempty"`
	SkippedLines int                     `json:"skipped_lines,omitempty"`
	Warnings     []string                `json:"warnings,omitempty"`
	Report       *model.ValidationReport `json:"report"`
}

// TextResponse is the response for the raw text extraction endpoint
type TextResponse struct {
	Text string `json:"text"`
}

// TestTemplateRequest carries sample text plus an in-memory template for
// a dry run; the template need not be persisted or active.
type TestTemplateRequest struct {
	Text     string                `json:"text"`
	Template model.ParsingTemplate `json:"template"`
}

// TemplatesResponse lists the templates available for auto-selection
type TemplatesResponse struct {
	Templates []model.ParsingTemplate `json:"templates"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Field    string   `json:"field,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
