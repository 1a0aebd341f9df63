package parser_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/parser"
	"github.com/retailops/poextract/internal/template"
)

func compile(t *testing.T, tpl model.ParsingTemplate) *template.Compiled {
	t.Helper()
	c, err := template.Compile(&tpl)
	require.NoError(t, err)
	return c
}

func acmeTemplate() model.ParsingTemplate {
	return model.ParsingTemplate{
		Name:           "acme",
		Active:         true,
		DetectKeywords: []string{"ACME"},
		Header: &model.HeaderConfig{
			OrderNumberRegex: `Order\s*#\s*(\S+)`,
			DateRegex:        `Date:\s*(\d{2}/\d{2}/\d{4})`,
			TotalRegex:       `Total:\s*\$([\d.,]+)`,
			SupplierRegex:    `(ACME Supplies\s*\w*\.?)`,
		},
		Products: model.ProductsConfig{
			TableStartMarker: "DESCRIPTION",
			TableEndMarker:   "SUBTOTAL",
			LineRegex:        `^([A-Z]\d+)\s+(.+?)\s{2,}(\d+)\s+([\d.,]+)\s+([\d.,]+)\s*$`,
			FieldMapping: map[string]int{
				model.FieldSKU:         1,
				model.FieldDescription: 2,
				model.FieldQty:         3,
				model.FieldPrice:       4,
				model.FieldTotal:       5,
			},
		},
	}
}

const acmeText = `ACME Supplies Inc.
Order # PO-4711
Date: 03/02/2026

DESCRIPTION
A100  Widget blue              3    10.00     30.00
-- free form noise the line regex ignores --
A200  Gadget, large            2    25.50     51.00
A300  Broken qty line          xx   10.00     10.00
SUBTOTAL
A400  After end marker         1     5.00      5.00
Total: $1901.00
`

func TestApplyCompiled_Full(t *testing.T) {
	c := compile(t, acmeTemplate())

	result, skipped := parser.ApplyCompiled(acmeText, c)

	assert.Equal(t, "PO-4711", result.OrderNumber)
	assert.Equal(t, "03/02/2026", result.Date)
	assert.Equal(t, "ACME Supplies Inc.", result.SupplierName)
	require.NotNil(t, result.DocumentTotal)
	assert.True(t, result.DocumentTotal.Equal(decimal.RequireFromString("1901.00")))
	assert.Nil(t, result.Discount)

	// A300 matches the line pattern? No: qty "xx" fails the regex itself,
	// so it is skipped silently, not counted.
	assert.Equal(t, 0, skipped)

	require.Len(t, result.Products, 2)
	first, second := result.Products[0], result.Products[1]

	assert.Equal(t, "A100", first.SKU)
	assert.Equal(t, "Widget blue", first.Description)
	assert.True(t, first.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, first.UnitPrice.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, first.LineTotal)
	assert.True(t, first.LineTotal.Equal(decimal.NewFromInt(30)))

	assert.Equal(t, "Gadget, large", second.Description)
}

func TestApplyCompiled_OrderPreserved(t *testing.T) {
	c := compile(t, acmeTemplate())

	result, _ := parser.ApplyCompiled(acmeText, c)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "A100", result.Products[0].SKU)
	assert.Equal(t, "A200", result.Products[1].SKU)
}

func TestApplyCompiled_Idempotent(t *testing.T) {
	c := compile(t, acmeTemplate())

	first, firstSkipped := parser.ApplyCompiled(acmeText, c)
	second, secondSkipped := parser.ApplyCompiled(acmeText, c)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSkipped, secondSkipped)
}

func TestApplyCompiled_MissingHeadersNotAnError(t *testing.T) {
	tpl := acmeTemplate()
	tpl.Header.OrderNumberRegex = `Purchase Order No\.\s*(\S+)` // will not match

	result, _ := parser.ApplyCompiled(acmeText, compile(t, tpl))
	assert.Empty(t, result.OrderNumber)
	assert.NotEmpty(t, result.Products)
}

func TestApplyCompiled_NoMarkersUsesWholeText(t *testing.T) {
	tpl := acmeTemplate()
	tpl.Products.TableStartMarker = ""
	tpl.Products.TableEndMarker = ""

	result, _ := parser.ApplyCompiled(acmeText, compile(t, tpl))
	// Without the end marker the A400 row is parsed too.
	require.Len(t, result.Products, 3)
	assert.Equal(t, "A400", result.Products[2].SKU)
}

func TestApplyCompiled_UnparseableNumericCounted(t *testing.T) {
	tpl := acmeTemplate()
	// Loosen qty to swallow non-digits so the numeric parse has to fail.
	tpl.Products.LineRegex = `^([A-Z]\d+)\s+(.+?)\s{2,}(\S+)\s+([\d.,]+)\s+([\d.,]+)\s*$`

	result, skipped := parser.ApplyCompiled(acmeText, compile(t, tpl))
	assert.Equal(t, 1, skipped) // the "xx" quantity row
	assert.Len(t, result.Products, 2)
}

func TestApplyCompiled_HeaderWithoutGroupTakesFullMatch(t *testing.T) {
	tpl := acmeTemplate()
	tpl.Header.OrderNumberRegex = `PO-\d+`

	result, _ := parser.ApplyCompiled(acmeText, compile(t, tpl))
	assert.Equal(t, "PO-4711", result.OrderNumber)
}

func TestGeneric_SpecimenLine(t *testing.T) {
	text := "Producto A - Test              2     100.50    201.00\n"

	result, skipped := parser.Generic(text)
	assert.Equal(t, 0, skipped)
	require.Len(t, result.Products, 1)

	p := result.Products[0]
	assert.Equal(t, "Producto A - Test", p.Description)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("100.50")))
	require.NotNil(t, p.LineTotal)
	assert.True(t, p.LineTotal.Equal(decimal.RequireFromString("201.00")))
}

func TestGeneric_RoundTrip(t *testing.T) {
	// total built as qty * price must reconstruct within 0.01
	text := "Tornillo M8 galvanizado         12      3.75     45.00\n"

	result, _ := parser.Generic(text)
	require.Len(t, result.Products, 1)

	p := result.Products[0]
	require.NotNil(t, p.LineTotal)
	diff := p.LineTotal.Sub(p.ExpectedTotal()).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")),
		"diff %s exceeds tolerance", diff.String())
}

func TestGeneric_IgnoresNonProductLines(t *testing.T) {
	text := `Ferreteria El Tornillo
Calle Falsa 123
Producto A - Test              2     100.50    201.00
Gracias por su compra
`
	result, _ := parser.Generic(text)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Producto A - Test", result.Products[0].Description)
}

func TestGeneric_AnchoredAtLineEnd(t *testing.T) {
	// Trailing text after the total must not match.
	text := "Producto A - Test              2     100.50    201.00  IVA incl.\n"

	result, _ := parser.Generic(text)
	assert.Empty(t, result.Products)
}
