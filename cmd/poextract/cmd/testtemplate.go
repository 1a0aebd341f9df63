package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/pdftext"
	"github.com/retailops/poextract/internal/processor"
	"github.com/retailops/poextract/internal/validator"
)

var templateFile string

var testTemplateCmd = &cobra.Command{
	Use:   "test-template [file]",
	Short: "Dry-run a parsing template against a document",
	Long: `Run a single parsing template against a PDF or plain-text file and
show what it would extract, without the template being active anywhere.

The template is read from a JSON file. Detection keywords and the active
flag are ignored; the template is applied directly. Template compile
errors are reported with the offending field.

Examples:
  poextract test-template order.pdf --template draft.json
  poextract test-template order.txt --template draft.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTestTemplate,
}

func init() {
	rootCmd.AddCommand(testTemplateCmd)

	testTemplateCmd.Flags().StringVar(&templateFile, "template", "", "JSON file with the template to test (required)")
	testTemplateCmd.MarkFlagRequired("template")
}

func runTestTemplate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tplData, err := os.ReadFile(templateFile)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}

	var tpl model.ParsingTemplate
	if err := json.Unmarshal(tplData, &tpl); err != nil {
		return fmt.Errorf("failed to parse template file: %w", err)
	}

	text, err := readDocumentText(args[0])
	if err != nil {
		return err
	}

	pipeline := processor.NewPipeline()
	result, err := pipeline.TestTemplate(ctx, text, &tpl)
	if err != nil {
		var tplErr *model.TemplateError
		if errors.As(err, &tplErr) {
			return fmt.Errorf("template %q is invalid (%s): %s", tplErr.Template, tplErr.Field, tplErr.Message)
		}
		return err
	}

	output := &ExtractResult{
		File:         args[0],
		Result:       result.Extraction,
		Method:       string(result.Method),
		Template:     result.TemplateName,
		SkippedLines: result.SkippedLines,
		Warnings:     result.Warnings,
		Report:       validator.Validate(result.Extraction),
	}

	return outputResults([]*ExtractResult{output})
}

// readDocumentText loads the file and extracts text when it is a PDF;
// any other file is taken as already-extracted text.
func readDocumentText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".pdf" || processor.DetectFormat(data) == processor.FormatPDF {
		extractor := pdftext.NewExtractor()
		return extractor.Text(data)
	}
	return string(data), nil
}
