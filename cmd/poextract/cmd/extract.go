package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/processor"
	"github.com/retailops/poextract/internal/validator"
)

var (
	outputFile string
	timeout    time.Duration
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract purchase-order data from PDF files",
	Long: `Extract structured purchase-order data from one or more PDF files.

Each file is converted to text, matched against the supplier templates
(if any were provided with --templates), parsed, and validated.

Examples:
  poextract extract order.pdf
  poextract extract orders/ --templates templates.json
  poextract extract *.pdf -f table
  poextract extract order.pdf -o result.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Processing timeout per file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to process")
	}

	templates, err := loadTemplates()
	if err != nil {
		return err
	}

	printVerbose("Found %d files to process (%d templates loaded)\n", len(files), len(templates))

	pipeline := processor.NewPipeline()

	results := make([]*ExtractResult, 0, len(files))
	for _, file := range files {
		printVerbose("Processing: %s\n", file)

		result := extractFile(pipeline, file, templates)
		results = append(results, result)

		if result.Error != "" {
			printVerbose("  Error: %s\n", result.Error)
		} else {
			printVerbose("  Method: %s, Products: %d, Skipped lines: %d\n",
				result.Method, len(result.Result.Products), result.SkippedLines)
		}
	}

	return outputResults(results)
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			// Check if it's a directory
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isSupportedFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isSupportedFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}

func extractFile(pipeline *processor.Pipeline, filePath string, templates []model.ParsingTemplate) *ExtractResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := &ExtractResult{
		File: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	pipelineResult := pipeline.ProcessPDF(ctx, data, templates)
	if pipelineResult.Error != nil {
		result.Error = pipelineResult.Error.Error()
		return result
	}

	result.Result = pipelineResult.Extraction
	result.Method = string(pipelineResult.Method)
	result.Template = pipelineResult.TemplateName
	result.SkippedLines = pipelineResult.SkippedLines
	result.Warnings = pipelineResult.Warnings
	result.Report = validator.Validate(pipelineResult.Extraction)

	return result
}

func outputResults(results []*ExtractResult) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	case "csv":
		return outputCSV(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, results []*ExtractResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w *os.File, results []*ExtractResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tORDER\tDATE\tPRODUCTS\tTOTAL\tMETHOD\tVALID")
	fmt.Fprintln(tw, "----\t-----\t----\t--------\t-----\t------\t-----")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\n", r.File, r.Error)
			continue
		}

		if r.Result != nil {
			total := ""
			if r.Result.DocumentTotal != nil {
				total = r.Result.DocumentTotal.String()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%t\n",
				r.File,
				r.Result.OrderNumber,
				r.Result.Date,
				len(r.Result.Products),
				total,
				r.Method,
				r.Report != nil && r.Report.Valid,
			)
		}
	}

	return tw.Flush()
}

func outputCSV(w *os.File, results []*ExtractResult) error {
	fmt.Fprintln(w, "file,order_number,date,supplier,sku,description,quantity,unit_price,line_total,method,error")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "%s,,,,,,,,,,%s\n", r.File, escapeCSV(r.Error))
			continue
		}

		if r.Result == nil {
			continue
		}

		for _, p := range r.Result.Products {
			lineTotal := ""
			if p.LineTotal != nil {
				lineTotal = p.LineTotal.String()
			}
			fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,\n",
				r.File,
				escapeCSV(r.Result.OrderNumber),
				escapeCSV(r.Result.Date),
				escapeCSV(r.Result.SupplierName),
				escapeCSV(p.SKU),
				escapeCSV(p.Description),
				p.Quantity.String(),
				p.UnitPrice.String(),
				lineTotal,
				r.Method,
			)
		}
	}

	return nil
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}

// ExtractResult holds the result of processing a single file
type ExtractResult struct {
	File         string                  `json:"file"`
	Result       *model.ExtractionResult `json:"result,omitempty"`
	Method       string                  `json:"method,omitempty"`
	Template     string                  `json:"template,omitempty"`
	SkippedLines int                     `json:"skipped_lines,omitempty"`
	Warnings     []string                `json:"warnings,omitempty"`
	Report       *model.ValidationReport `json:"report,omitempty"`
	Error        string                  `json:"error,omitempty"`
}
