package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/processor"
	"github.com/retailops/poextract/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Extract and validate purchase-order PDF files",
	Long: `Extract one or more PDF files and run the validation checks on the
extracted data.

Checks performed:
  - At least one product extracted
  - Product descriptions present
  - Quantities positive, prices non-negative
  - Line totals reconcile with quantity x unit price
  - Document total reconciles with the line total sum

A file passes when no error-level finding is raised. Warning-level
findings are reported but do not fail the file.

Examples:
  poextract validate order.pdf
  poextract validate orders/ --templates templates.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	templates, err := loadTemplates()
	if err != nil {
		return err
	}

	pipeline := processor.NewPipeline()
	results := make([]*FileReport, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validatePDF(pipeline, file, templates)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
			}
			for _, f := range r.Findings {
				marker := "-"
				if f.Severity == model.SeverityWarning {
					marker = "⚠"
				}
				fmt.Printf("  %s [%s] %s\n", marker, f.Check, f.Message)
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

func validatePDF(pipeline *processor.Pipeline, filePath string, templates []model.ParsingTemplate) *FileReport {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report := &FileReport{
		File:  filePath,
		Valid: false,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		report.Findings = append(report.Findings, model.Finding{
			Check:    "read_file",
			Severity: model.SeverityError,
			Message:  err.Error(),
		})
		return report
	}

	result := pipeline.ProcessPDF(ctx, data, templates)
	if result.Error != nil {
		report.Findings = append(report.Findings, model.Finding{
			Check:    "extract",
			Severity: model.SeverityError,
			Message:  result.Error.Error(),
		})
		return report
	}

	validation := validator.Validate(result.Extraction)
	report.Valid = validation.Valid
	report.Findings = validation.Findings
	report.Warnings = result.Warnings
	report.Method = string(result.Method)

	return report
}

// FileReport holds the validation outcome for a single file
type FileReport struct {
	File     string          `json:"file"`
	Valid    bool            `json:"valid"`
	Method   string          `json:"method,omitempty"`
	Findings []model.Finding `json:"findings,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}
