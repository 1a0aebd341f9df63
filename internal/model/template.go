package model

import "github.com/google/uuid"

// Semantic field names usable in a template's field mapping.
const (
	FieldSKU         = "sku"
	FieldDescription = "description"
	FieldQty         = "qty"
	FieldPrice       = "price"
	FieldTotal       = "total"
)

// MandatoryFields are the field mapping entries every template must define.
var MandatoryFields = []string{FieldDescription, FieldQty, FieldPrice}

// HeaderConfig holds the optional header-level regexes of a template.
// Each pattern is applied once against the whole document text; capture
// group 1 wins when present, otherwise the full match is taken.
type HeaderConfig struct {
	OrderNumberRegex string `json:"order_number_regex,omitempty"`
	DateRegex        string `json:"date_regex,omitempty"`
	TotalRegex       string `json:"total_regex,omitempty"`
	DiscountRegex    string `json:"discount_regex,omitempty"`
	// SupplierRegex confirms the document belongs to the expected vendor
	// and yields the supplier name.
	SupplierRegex string `json:"supplier_regex,omitempty"`
}

// ProductsConfig describes how to locate and parse the product table.
type ProductsConfig struct {
	// TableStartMarker and TableEndMarker are literal substrings delimiting
	// the product block. Either may be empty.
	TableStartMarker string `json:"table_start_marker,omitempty"`
	TableEndMarker   string `json:"table_end_marker,omitempty"`

	// LineRegex is applied per candidate line inside the product block.
	LineRegex string `json:"line_regex"`

	// FieldMapping maps a semantic field name to the 1-based capture group
	// index in LineRegex. description, qty and price are mandatory and must
	// use distinct groups; sku and total are optional.
	FieldMapping map[string]int `json:"field_mapping"`
}

// ParsingTemplate is a supplier-specific extraction strategy. Templates are
// authored and persisted outside the core; during one extraction call they
// are immutable inputs.
type ParsingTemplate struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	SupplierID *uuid.UUID `json:"supplier_id,omitempty"`
	Active     bool       `json:"active"`

	// DetectKeywords gate auto-selection: the template is a candidate when
	// any keyword occurs as a case-insensitive substring of the text.
	DetectKeywords []string `json:"detect_keywords"`

	Header   *HeaderConfig  `json:"header_config,omitempty"`
	Products ProductsConfig `json:"products_config"`
}
