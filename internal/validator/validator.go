// Package validator checks extraction results for structural soundness
// before anyone trusts them. It performs no I/O and no mutation; the
// report is advisory data for the caller to surface.
package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retailops/poextract/internal/model"
)

// Check names used in findings.
const (
	CheckProductsPresent    = "products_present"
	CheckDescriptionPresent = "description_present"
	CheckQuantityPositive   = "quantity_positive"
	CheckPriceNonNegative   = "unit_price_non_negative"
	CheckLineTotal          = "line_total_consistent"
	CheckDocumentTotal      = "document_total_consistent"
)

// Line totals must reconcile with qty * price within 0.01 absolute or
// 0.5% relative, whichever is larger; supplier rounding differs.
var (
	lineTolAbs = decimal.RequireFromString("0.01")
	lineTolRel = decimal.RequireFromString("0.005")
)

// Document totals come from header text and are less reliable than line
// data, so the tolerance is looser and a mismatch is only a warning.
var (
	docTolAbs = decimal.RequireFromString("1.00")
	docTolRel = decimal.RequireFromString("0.01")
)

// Validate runs every check and collects all failures; checks never
// short-circuit. Valid is true iff no error-level finding was produced.
func Validate(result *model.ExtractionResult) *model.ValidationReport {
	report := &model.ValidationReport{Findings: []model.Finding{}}

	if len(result.Products) == 0 {
		fail(report, CheckProductsPresent, model.SeverityError, "no products were extracted")
	}

	for i := range result.Products {
		p := &result.Products[i]
		nr := i + 1

		if p.Description == "" {
			fail(report, CheckDescriptionPresent, model.SeverityError,
				fmt.Sprintf("product %d has an empty description", nr))
		}
		if !p.Quantity.IsPositive() {
			fail(report, CheckQuantityPositive, model.SeverityError,
				fmt.Sprintf("product %d has quantity %s, expected > 0", nr, p.Quantity.String()))
		}
		if p.UnitPrice.IsNegative() {
			fail(report, CheckPriceNonNegative, model.SeverityError,
				fmt.Sprintf("product %d has negative unit price %s", nr, p.UnitPrice.String()))
		}

		if p.LineTotal != nil {
			expected := p.ExpectedTotal()
			if !withinTolerance(*p.LineTotal, expected, lineTolAbs, lineTolRel) {
				fail(report, CheckLineTotal, model.SeverityError,
					fmt.Sprintf("product %d line total %s does not reconcile with %s x %s = %s",
						nr, p.LineTotal.String(), p.Quantity.String(), p.UnitPrice.String(), expected.String()))
			}
		}
	}

	if result.DocumentTotal != nil && len(result.Products) > 0 {
		sum := result.LineTotalSum()
		if result.Discount != nil {
			sum = sum.Sub(*result.Discount)
		}
		if !withinTolerance(*result.DocumentTotal, sum, docTolAbs, docTolRel) {
			fail(report, CheckDocumentTotal, model.SeverityWarning,
				fmt.Sprintf("document total %s differs from the sum of line totals %s",
					result.DocumentTotal.String(), sum.String()))
		}
	}

	report.Valid = len(report.Errors()) == 0
	return report
}

func fail(report *model.ValidationReport, check string, severity model.Severity, message string) {
	report.Findings = append(report.Findings, model.Finding{
		Check:    check,
		Severity: severity,
		Message:  message,
	})
}

// withinTolerance reports whether got is within max(abs, rel*want) of want.
func withinTolerance(got, want, tolAbs, tolRel decimal.Decimal) bool {
	tol := want.Abs().Mul(tolRel)
	if tol.LessThan(tolAbs) {
		tol = tolAbs
	}
	return got.Sub(want).Abs().LessThanOrEqual(tol)
}
