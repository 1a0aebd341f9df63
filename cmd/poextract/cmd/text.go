package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retailops/poextract/internal/pdftext"
)

var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Dump the extracted text layer of a PDF",
	Long: `Extract and print the layout-preserving text layer of a PDF file.

Useful when writing a new supplier template: the printed text is exactly
what the line regular expressions run against.

Examples:
  poextract text order.pdf
  poextract text order.pdf > order.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	extractor := pdftext.NewExtractor()
	text, err := extractor.Text(data)
	if err != nil {
		return err
	}

	fmt.Print(text)
	if len(text) > 0 && text[len(text)-1] != '\n' {
		fmt.Println()
	}
	return nil
}
