package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/validator"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func goodResult() *model.ExtractionResult {
	return &model.ExtractionResult{
		Products: []model.ExtractedProduct{
			{Description: "Producto A - Test", Quantity: dec("2"), UnitPrice: dec("100.50"), LineTotal: decPtr("201.00")},
			{Description: "Producto B", Quantity: dec("1"), UnitPrice: dec("1700.00"), LineTotal: decPtr("1700.00")},
		},
		DocumentTotal: decPtr("1901.00"),
	}
}

func TestValidate_Accepts(t *testing.T) {
	report := validator.Validate(goodResult())

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors())
	assert.Empty(t, report.Warnings())
}

func TestValidate_EmptyProductListIsError(t *testing.T) {
	report := validator.Validate(&model.ExtractionResult{})

	assert.False(t, report.Valid)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, validator.CheckProductsPresent, report.Findings[0].Check)
	assert.Equal(t, model.SeverityError, report.Findings[0].Severity)
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	result := &model.ExtractionResult{
		Products: []model.ExtractedProduct{
			{Description: "", Quantity: dec("0"), UnitPrice: dec("-5")},
		},
	}

	report := validator.Validate(result)
	assert.False(t, report.Valid)

	checks := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		checks = append(checks, f.Check)
	}
	assert.Contains(t, checks, validator.CheckDescriptionPresent)
	assert.Contains(t, checks, validator.CheckQuantityPositive)
	assert.Contains(t, checks, validator.CheckPriceNonNegative)
}

func TestValidate_LineTotalWithinToleranceAccepted(t *testing.T) {
	result := &model.ExtractionResult{
		Products: []model.ExtractedProduct{
			// 3 * 33.333 = 99.999; supplier rounded to 100.00
			{Description: "rounded", Quantity: dec("3"), UnitPrice: dec("33.333"), LineTotal: decPtr("100.00")},
		},
	}

	report := validator.Validate(result)
	assert.True(t, report.Valid, "errors: %v", report.Errors())
}

func TestValidate_LineTotalMismatchIsError(t *testing.T) {
	result := &model.ExtractionResult{
		Products: []model.ExtractedProduct{
			{Description: "off", Quantity: dec("2"), UnitPrice: dec("100.50"), LineTotal: decPtr("250.00")},
		},
	}

	report := validator.Validate(result)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors(), 1)
	assert.Contains(t, report.Errors()[0], "does not reconcile")
}

func TestValidate_DocumentTotalMismatchIsWarningOnly(t *testing.T) {
	result := goodResult()
	result.DocumentTotal = decPtr("2500.00")

	report := validator.Validate(result)
	assert.True(t, report.Valid, "document total mismatch must not invalidate")
	require.Len(t, report.Warnings(), 1)
	assert.Contains(t, report.Warnings()[0], "differs from the sum")
}

func TestValidate_DiscountReducesExpectedDocumentTotal(t *testing.T) {
	result := goodResult()
	result.Discount = decPtr("100.00")
	result.DocumentTotal = decPtr("1801.00")

	report := validator.Validate(result)
	assert.Empty(t, report.Warnings())
}

func TestValidate_MissingLineTotalsSkipReconciliation(t *testing.T) {
	result := &model.ExtractionResult{
		Products: []model.ExtractedProduct{
			{Description: "no total", Quantity: dec("2"), UnitPrice: dec("10")},
		},
	}

	report := validator.Validate(result)
	assert.True(t, report.Valid)
}
