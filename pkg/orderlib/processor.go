package orderlib

import (
	"context"
	"io"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/processor"
	"github.com/retailops/poextract/internal/validator"
)

// Options configures processor behavior
type Options struct {
	// Templates is the supplier template snapshot consulted on every
	// extraction. Empty means every document goes through the generic
	// parser.
	Templates []ParsingTemplate

	// Validate runs the validation checks after extraction and attaches
	// the report to the result.
	Validate bool
}

// DefaultOptions returns default processor options
func DefaultOptions() Options {
	return Options{
		Validate: true,
	}
}

// Result is an extraction outcome with metadata
type Result struct {
	Order        *ExtractionResult
	Method       string
	Template     string
	SkippedLines int
	Warnings     []string
	Report       *ValidationReport
}

// Processor extracts purchase-order data using the internal pipeline
type Processor struct {
	pipeline *processor.Pipeline
	options  Options
}

// NewProcessor creates a new purchase-order processor with the given options
func NewProcessor(opts Options) *Processor {
	return &Processor{
		pipeline: processor.NewPipeline(),
		options:  opts,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultOptions())
}

// Extract reads PDF bytes from r and returns the extraction result
func (p *Processor) Extract(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewExtractionError("read", "failed to read input", err)
	}

	return p.convert(p.pipeline.ProcessPDF(ctx, data, p.options.Templates))
}

// ExtractText runs template matching and parsing on already-extracted
// document text, skipping the PDF stage
func (p *Processor) ExtractText(ctx context.Context, text string) (*Result, error) {
	return p.convert(p.pipeline.ProcessText(ctx, text, p.options.Templates))
}

// TestTemplate applies a single template to text without it being part
// of the configured snapshot. The template's active flag and detection
// keywords are ignored.
func (p *Processor) TestTemplate(ctx context.Context, text string, tpl *ParsingTemplate) (*Result, error) {
	result, err := p.pipeline.TestTemplate(ctx, text, tpl)
	if err != nil {
		return nil, err
	}
	return p.convert(result)
}

// ExtractBatch extracts multiple inputs concurrently
func (p *Processor) ExtractBatch(ctx context.Context, inputs []io.Reader) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	errCh := make(chan error, len(inputs))

	for i, input := range inputs {
		go func(idx int, r io.Reader) {
			result, err := p.Extract(ctx, r)
			if err != nil {
				errCh <- err
				return
			}
			results[idx] = result
			errCh <- nil
		}(i, input)
	}

	// Wait for all goroutines
	var firstErr error
	for range inputs {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

func (p *Processor) convert(r *processor.Result) (*Result, error) {
	if r.Error != nil {
		return nil, r.Error
	}

	result := &Result{
		Order:        r.Extraction,
		Method:       string(r.Method),
		Template:     r.TemplateName,
		SkippedLines: r.SkippedLines,
		Warnings:     r.Warnings,
	}

	if p.options.Validate && r.Extraction != nil {
		result.Report = validator.Validate(r.Extraction)
	}

	return result, nil
}
