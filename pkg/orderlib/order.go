// Package orderlib provides a public API for extracting purchase-order
// data from supplier PDF documents.
//
// This package exposes the core types for template-driven extraction,
// the generic fallback parser, and validation of extracted data.
//
// Example usage:
//
//	proc := orderlib.NewDefaultProcessor()
//	result, err := proc.Extract(ctx, pdfFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Order.OrderNumber)
package orderlib

import "github.com/retailops/poextract/internal/model"

// Re-export core types for public API
type (
	ParsingTemplate  = model.ParsingTemplate
	HeaderConfig     = model.HeaderConfig
	ProductsConfig   = model.ProductsConfig
	ExtractedProduct = model.ExtractedProduct
	ExtractionResult = model.ExtractionResult
	ValidationReport = model.ValidationReport
	Finding          = model.Finding
	Severity         = model.Severity
)

// Re-export product field names used in template field mappings
const (
	FieldSKU         = model.FieldSKU
	FieldDescription = model.FieldDescription
	FieldQty         = model.FieldQty
	FieldPrice       = model.FieldPrice
	FieldTotal       = model.FieldTotal
)

// Re-export finding severities
const (
	SeverityError   = model.SeverityError
	SeverityWarning = model.SeverityWarning
)

// Re-export error types
type (
	UnreadablePDFError = model.UnreadablePDFError
	TemplateError      = model.TemplateError
	ExtractionError    = model.ExtractionError
)
