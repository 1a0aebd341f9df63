package parser

import (
	"regexp"

	"github.com/retailops/poextract/internal/model"
)

// genericLine recognizes the common "description, then whitespace-separated
// integer quantity, decimal price, decimal total" row shape. Anchored at
// line end so trailing text is never swallowed into the total; the
// description must be separated from the numbers by at least two spaces
// (a column gap, not a word gap).
var genericLine = regexp.MustCompile(
	`^\s*(\S.*?)\s{2,}(\d+)\s+(\d[\d.,]*[.,]\d{1,2})\s+(\d[\d.,]*[.,]\d{1,2})\s*$`)

// genericMapping is the fixed field mapping of the fallback path.
var genericMapping = map[string]int{
	model.FieldDescription: 1,
	model.FieldQty:         2,
	model.FieldPrice:       3,
	model.FieldTotal:       4,
}

// Generic extracts products from untemplated text using the built-in line
// pattern. Used when no supplier template matches: lower accuracy than a
// tuned template, but still a usable draft instead of a hard failure.
// Header fields stay undefined; only a matching template knows where they
// live.
func Generic(text string) (*model.ExtractionResult, int) {
	products, skipped := parseLines(text, genericLine, genericMapping)
	return &model.ExtractionResult{Products: products}, skipped
}
