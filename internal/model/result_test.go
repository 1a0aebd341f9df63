package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/retailops/poextract/internal/model"
)

func TestExtractedProduct_ExpectedTotal(t *testing.T) {
	p := model.ExtractedProduct{
		Description: "Producto A",
		Quantity:    decimal.NewFromInt(2),
		UnitPrice:   decimal.RequireFromString("100.50"),
	}

	assert.True(t, p.ExpectedTotal().Equal(decimal.RequireFromString("201.00")),
		"expected 201.00, got %s", p.ExpectedTotal().String())
}

func TestExtractionResult_LineTotalSum(t *testing.T) {
	explicit := decimal.RequireFromString("50.00")
	r := model.ExtractionResult{
		Products: []model.ExtractedProduct{
			{
				Description: "with explicit total",
				Quantity:    decimal.NewFromInt(3),
				UnitPrice:   decimal.NewFromInt(20),
				LineTotal:   &explicit, // deliberately not 3*20
			},
			{
				Description: "without total",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.RequireFromString("10.25"),
			},
		},
	}

	// 50.00 + 2*10.25 = 70.50; the explicit total wins over qty*price.
	assert.True(t, r.LineTotalSum().Equal(decimal.RequireFromString("70.50")),
		"expected 70.50, got %s", r.LineTotalSum().String())
}

func TestValidationReport_Severities(t *testing.T) {
	report := model.ValidationReport{
		Valid: false,
		Findings: []model.Finding{
			{Check: "products_present", Severity: model.SeverityError, Message: "no products"},
			{Check: "document_total_consistent", Severity: model.SeverityWarning, Message: "total off"},
		},
	}

	assert.Equal(t, []string{"no products"}, report.Errors())
	assert.Equal(t, []string{"total off"}, report.Warnings())
}
