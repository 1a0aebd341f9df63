// Package template turns stringly-typed parsing templates into compiled,
// bounds-checked parsers and selects the right template for a document.
package template

import (
	"fmt"
	"regexp"

	"github.com/retailops/poextract/internal/model"
)

// Compiled is a ready-to-apply template: every configured pattern compiled
// once, every field mapping index verified against the line regex group
// count. Compilation never happens inside the per-line loop.
type Compiled struct {
	Name        string
	StartMarker string
	EndMarker   string

	Line    *regexp.Regexp
	Mapping map[string]int

	OrderNumber *regexp.Regexp
	Date        *regexp.Regexp
	Total       *regexp.Regexp
	Discount    *regexp.Regexp
	Supplier    *regexp.Regexp
}

// Compile validates and compiles a template. The template does not need to
// be persisted or active; authoring tools compile unsaved drafts the same
// way. Any uncompilable pattern or out-of-range mapping index yields a
// TemplateError naming the offending field.
func Compile(tpl *model.ParsingTemplate) (*Compiled, error) {
	if tpl.Products.LineRegex == "" {
		return nil, model.NewTemplateError(tpl.Name, "products_config.line_regex", "pattern is required", nil)
	}

	line, err := regexp.Compile(tpl.Products.LineRegex)
	if err != nil {
		return nil, model.NewTemplateError(tpl.Name, "products_config.line_regex", "pattern does not compile", err)
	}

	mapping, err := checkMapping(tpl, line.NumSubexp())
	if err != nil {
		return nil, err
	}

	c := &Compiled{
		Name:        tpl.Name,
		StartMarker: tpl.Products.TableStartMarker,
		EndMarker:   tpl.Products.TableEndMarker,
		Line:        line,
		Mapping:     mapping,
	}

	if h := tpl.Header; h != nil {
		headers := []struct {
			pattern string
			field   string
			dst     **regexp.Regexp
		}{
			{h.OrderNumberRegex, "header_config.order_number_regex", &c.OrderNumber},
			{h.DateRegex, "header_config.date_regex", &c.Date},
			{h.TotalRegex, "header_config.total_regex", &c.Total},
			{h.DiscountRegex, "header_config.discount_regex", &c.Discount},
			{h.SupplierRegex, "header_config.supplier_regex", &c.Supplier},
		}
		for _, hd := range headers {
			if hd.pattern == "" {
				continue
			}
			re, err := regexp.Compile(hd.pattern)
			if err != nil {
				return nil, model.NewTemplateError(tpl.Name, hd.field, "pattern does not compile", err)
			}
			*hd.dst = re
		}
	}

	return c, nil
}

// checkMapping enforces the field mapping invariants: mandatory fields
// present with distinct indices, every index within 1..groups.
func checkMapping(tpl *model.ParsingTemplate, groups int) (map[string]int, error) {
	mapping := tpl.Products.FieldMapping
	if len(mapping) == 0 {
		return nil, model.NewTemplateError(tpl.Name, "products_config.field_mapping", "mapping is required", nil)
	}

	known := map[string]bool{
		model.FieldSKU:         true,
		model.FieldDescription: true,
		model.FieldQty:         true,
		model.FieldPrice:       true,
		model.FieldTotal:       true,
	}

	for field, idx := range mapping {
		if !known[field] {
			return nil, model.NewTemplateError(tpl.Name, "products_config.field_mapping",
				fmt.Sprintf("unknown field %q", field), nil)
		}
		if idx < 1 || idx > groups {
			return nil, model.NewTemplateError(tpl.Name, "products_config.field_mapping",
				fmt.Sprintf("field %q maps to group %d but the line pattern has %d groups", field, idx, groups), nil)
		}
	}

	seen := map[int]string{}
	for _, field := range model.MandatoryFields {
		idx, ok := mapping[field]
		if !ok {
			return nil, model.NewTemplateError(tpl.Name, "products_config.field_mapping",
				fmt.Sprintf("mandatory field %q is missing", field), nil)
		}
		if other, dup := seen[idx]; dup {
			return nil, model.NewTemplateError(tpl.Name, "products_config.field_mapping",
				fmt.Sprintf("fields %q and %q map to the same group %d", other, field, idx), nil)
		}
		seen[idx] = field
	}

	out := make(map[string]int, len(mapping))
	for k, v := range mapping {
		out[k] = v
	}
	return out, nil
}
