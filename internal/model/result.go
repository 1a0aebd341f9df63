package model

import "github.com/shopspring/decimal"

// ExtractedProduct is one parsed line item.
type ExtractedProduct struct {
	SKU         string          `json:"sku,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`

	// LineTotal is present only when the source line carried it.
	LineTotal *decimal.Decimal `json:"line_total,omitempty"`
}

// ExpectedTotal returns quantity * unit price rounded to 2 places.
func (p *ExtractedProduct) ExpectedTotal() decimal.Decimal {
	return p.Quantity.Mul(p.UnitPrice).Round(2)
}

// ExtractionResult is the aggregate output of one extraction call.
// Products keep the order in which they appeared in the source text.
// The result is ephemeral; it becomes a purchase-order draft for user
// review downstream and is never persisted here.
type ExtractionResult struct {
	Products      []ExtractedProduct `json:"products"`
	OrderNumber   string             `json:"order_number,omitempty"`
	Date          string             `json:"date,omitempty"`
	SupplierName  string             `json:"supplier_name,omitempty"`
	DocumentTotal *decimal.Decimal   `json:"document_total,omitempty"`
	Discount      *decimal.Decimal   `json:"discount,omitempty"`
}

// LineTotalSum sums the line totals, substituting quantity * unit price
// for products without an explicit total.
func (r *ExtractionResult) LineTotalSum() decimal.Decimal {
	sum := decimal.Zero
	for i := range r.Products {
		p := &r.Products[i]
		if p.LineTotal != nil {
			sum = sum.Add(*p.LineTotal)
		} else {
			sum = sum.Add(p.ExpectedTotal())
		}
	}
	return sum
}
