// Package parser is the structured extraction engine: it applies a
// compiled template (or the built-in generic pattern) to extracted PDF
// text and produces ordered product rows plus header fields.
//
// Parsing is deliberately tolerant. Product tables come interleaved with
// headers, footers and whitespace, so lines that do not match the line
// pattern are skipped silently; a matching line whose numeric fields do
// not parse is skipped and counted, never fatal.
package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/numeric"
)

// parseLines runs the line pattern over every non-blank line of the block
// and builds products via the field mapping. Returns the products in
// source order and the count of matched lines dropped because a numeric
// field would not parse.
func parseLines(block string, line *regexp.Regexp, mapping map[string]int) ([]model.ExtractedProduct, int) {
	var products []model.ExtractedProduct
	skipped := 0

	for _, raw := range strings.Split(block, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		m := line.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		product, ok := buildProduct(m, mapping)
		if !ok {
			skipped++
			continue
		}
		products = append(products, product)
	}

	return products, skipped
}

func buildProduct(m []string, mapping map[string]int) (model.ExtractedProduct, bool) {
	var p model.ExtractedProduct

	p.Description = strings.TrimSpace(group(m, mapping[model.FieldDescription]))
	if idx, ok := mapping[model.FieldSKU]; ok {
		p.SKU = strings.TrimSpace(group(m, idx))
	}

	qty, err := numeric.Parse(group(m, mapping[model.FieldQty]))
	if err != nil {
		return p, false
	}
	p.Quantity = qty

	price, err := numeric.Parse(group(m, mapping[model.FieldPrice]))
	if err != nil {
		return p, false
	}
	p.UnitPrice = price

	if idx, ok := mapping[model.FieldTotal]; ok {
		raw := strings.TrimSpace(group(m, idx))
		if raw != "" {
			total, err := numeric.Parse(raw)
			if err != nil {
				return p, false
			}
			p.LineTotal = &total
		}
	}

	return p, true
}

// group returns capture group idx of a match, guarding against indices
// beyond the match (possible with nested optional groups).
func group(m []string, idx int) string {
	if idx < 1 || idx >= len(m) {
		return ""
	}
	return m[idx]
}

// headerValue applies a header regex to the whole text, first match only.
// Capture group 1 wins when the pattern has groups, else the full match.
// A nil or unmatched regex simply leaves the field undefined.
func headerValue(re *regexp.Regexp, text string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[0])
}

// headerAmount is headerValue plus numeric normalization; unparseable
// amounts leave the field undefined rather than failing the extraction.
func headerAmount(re *regexp.Regexp, text string) *decimal.Decimal {
	raw := headerValue(re, text)
	if raw == "" {
		return nil
	}
	d, err := numeric.Parse(raw)
	if err != nil {
		return nil
	}
	return &d
}
