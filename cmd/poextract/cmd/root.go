package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/store"
)

var (
	version = "1.0.0"

	// Global flags
	verbose       bool
	outputFormat  string
	templatesFile string
)

var rootCmd = &cobra.Command{
	Use:   "poextract",
	Short: "Extract purchase-order data from supplier PDFs",
	Long: `poextract is a CLI tool for extracting structured purchase-order data
from supplier PDF documents.

Extraction flow:
  1. PDF text extraction (layout-preserving)
  2. Supplier template matching via detection keywords
  3. Template-driven parsing, or the generic heuristic when no template matches
  4. Validation of the extracted products and totals

Examples:
  # Extract a single PDF
  poextract extract order.pdf

  # Extract with supplier templates
  poextract extract order.pdf --templates templates.json

  # Dump the raw text layer of a PDF
  poextract text order.pdf

  # Dry-run a template against a PDF without saving it
  poextract test-template order.pdf --template draft.json`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVarP(&templatesFile, "templates", "t", "", "JSON file with supplier parsing templates")
}

// loadTemplates reads the template file named by --templates. No flag
// means an empty snapshot, so only the generic parser runs.
func loadTemplates() ([]model.ParsingTemplate, error) {
	if templatesFile == "" {
		return nil, nil
	}

	source, err := store.NewFileSource(templatesFile)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	return source.ListActive(context.Background())
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
