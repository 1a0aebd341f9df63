package parser

import (
	"strings"

	"github.com/retailops/poextract/internal/template"

	"github.com/retailops/poextract/internal/model"
)

// ApplyCompiled runs a compiled template against extracted text. Header
// fields that do not match are left undefined, never an error. The second
// return value counts matched product lines dropped for unparseable
// numerics.
//
// Calling ApplyCompiled twice with identical inputs yields identical
// results; neither the template nor the parser holds state.
func ApplyCompiled(text string, c *template.Compiled) (*model.ExtractionResult, int) {
	result := &model.ExtractionResult{
		OrderNumber:   headerValue(c.OrderNumber, text),
		Date:          headerValue(c.Date, text),
		SupplierName:  headerValue(c.Supplier, text),
		DocumentTotal: headerAmount(c.Total, text),
		Discount:      headerAmount(c.Discount, text),
	}

	block := isolateBlock(text, c.StartMarker, c.EndMarker)
	products, skipped := parseLines(block, c.Line, c.Mapping)
	result.Products = products

	return result, skipped
}

// isolateBlock cuts the candidate product block out of the text: discard
// everything before the first start marker, then everything from the first
// end marker onward (searched after the start truncation). Missing markers
// leave the corresponding side open.
func isolateBlock(text, startMarker, endMarker string) string {
	block := text

	if startMarker != "" {
		if idx := strings.Index(block, startMarker); idx >= 0 {
			block = block[idx+len(startMarker):]
		}
	}
	if endMarker != "" {
		if idx := strings.Index(block, endMarker); idx >= 0 {
			block = block[:idx]
		}
	}

	return block
}
