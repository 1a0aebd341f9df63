// Package pdftext converts PDF byte streams into plain text suitable for
// line-based parsing. Horizontal gaps between positioned words are rebuilt
// as runs of spaces so downstream regexes can treat them as column
// separators.
package pdftext

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/retailops/poextract/internal/model"
)

// Extractor extracts plain text from PDF documents. Stateless; safe for
// concurrent use.
type Extractor struct {
	conf *pdfcpumodel.Configuration
}

// NewExtractor creates a new text extractor.
func NewExtractor() *Extractor {
	return &Extractor{conf: pdfcpumodel.NewDefaultConfiguration()}
}

// Text converts raw PDF bytes into plain text. The stream is validated
// with pdfcpu first; a stream that is not a parseable PDF fails hard with
// UnreadablePDFError. A parseable PDF with no embedded text layer yields
// empty or near-empty text, which is a soft condition for the caller's
// validator, not an error here.
func (e *Extractor) Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", model.NewUnreadablePDF("empty input", nil)
	}

	if _, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf); err != nil {
		return "", model.NewUnreadablePDF("document failed structural validation", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", model.NewUnreadablePDF("cannot open document", err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= reader.NumPage(); pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}

		for _, row := range rows {
			line := renderRow(row.Content)
			if line != "" {
				sb.WriteString(line)
			}
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}
