// Package processor wires the extraction stages together: PDF bytes to
// text, template selection, structured extraction with the generic
// fallback. Each request is parsed fresh from its inputs; the pipeline
// holds no per-request state and is safe for concurrent use.
package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/parser"
	"github.com/retailops/poextract/internal/pdftext"
	"github.com/retailops/poextract/internal/template"
)

// Method tags which extraction path produced a result.
type Method string

const (
	// MethodTemplate means a supplier template matched and was applied.
	MethodTemplate Method = "template"
	// MethodGeneric means no template matched and the built-in heuristic ran.
	MethodGeneric Method = "generic"
)

// Result is the outcome of one extraction request. Parse-stage problems
// are absorbed into Warnings and a partial Extraction; Error is set only
// for hard failures (unreadable input).
type Result struct {
	Extraction   *model.ExtractionResult
	Method       Method
	TemplateName string
	SkippedLines int
	Warnings     []string
	Error        error
}

// TextExtractor converts PDF bytes to plain text.
type TextExtractor interface {
	Text(data []byte) (string, error)
}

// Pipeline processes purchase-order documents.
type Pipeline struct {
	extractor TextExtractor
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithTextExtractor overrides the PDF text extractor.
func WithTextExtractor(e TextExtractor) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.extractor = e
		}
	}
}

// NewPipeline creates a pipeline with the default PDF text extractor.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{extractor: pdftext.NewExtractor()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessPDF extracts structured data from PDF bytes using the given
// template snapshot. Unreadable or non-PDF input is the only hard failure;
// everything downstream degrades into warnings and partial results.
func (p *Pipeline) ProcessPDF(ctx context.Context, data []byte, templates []model.ParsingTemplate) *Result {
	switch DetectFormat(data) {
	case FormatPDF:
	case FormatImage:
		return &Result{Error: model.NewUnreadablePDF("image input has no text layer, OCR is not supported", nil)}
	default:
		return &Result{Error: model.NewUnreadablePDF("input is not a PDF document", nil)}
	}

	text, err := p.extractor.Text(data)
	if err != nil {
		return &Result{Error: err}
	}

	result := p.ProcessText(ctx, text, templates)
	if strings.TrimSpace(text) == "" {
		result.Warnings = append(result.Warnings,
			"document yielded no text; it may be a scan without an embedded text layer")
	}
	return result
}

// ProcessText runs selection and extraction over already-extracted text.
// This is the whole pipeline minus the PDF decoding step; diagnostics and
// template dry runs enter here.
func (p *Pipeline) ProcessText(_ context.Context, text string, templates []model.ParsingTemplate) *Result {
	compiled, warnings := template.Select(text, templates)

	if compiled == nil {
		// No template matched; not an error, the generic path still
		// produces a usable draft for unknown suppliers.
		extraction, skipped := parser.Generic(text)
		return &Result{
			Extraction:   extraction,
			Method:       MethodGeneric,
			SkippedLines: skipped,
			Warnings:     warnings,
		}
	}

	extraction, skipped := parser.ApplyCompiled(text, compiled)
	if compiled.Supplier != nil && extraction.SupplierName == "" {
		warnings = append(warnings,
			fmt.Sprintf("template %q vendor confirmation pattern did not match", compiled.Name))
	}

	return &Result{
		Extraction:   extraction,
		Method:       MethodTemplate,
		TemplateName: compiled.Name,
		SkippedLines: skipped,
		Warnings:     warnings,
	}
}

// TestTemplate applies one in-memory template to sample text, ignoring the
// template's active flag and persistence state. Unlike auto-selection, a
// malformed template is returned to the author as a TemplateError instead
// of being skipped.
func (p *Pipeline) TestTemplate(_ context.Context, text string, tpl *model.ParsingTemplate) (*Result, error) {
	compiled, err := template.Compile(tpl)
	if err != nil {
		return nil, err
	}

	extraction, skipped := parser.ApplyCompiled(text, compiled)
	return &Result{
		Extraction:   extraction,
		Method:       MethodTemplate,
		TemplateName: compiled.Name,
		SkippedLines: skipped,
	}, nil
}
