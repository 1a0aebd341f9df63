package pdftext

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// A gap wider than this many points separates two columns rather than two
// words of the same cell.
const columnGapPts = 9.0

// Points of horizontal gap rendered as one space character.
const ptsPerSpace = 4.0

// renderRow joins the positioned text fragments of one row into a single
// line. Fragments separated by a column-sized gap get a proportional run
// of spaces so that "description   qty   price" keeps visually distinct
// columns in the output.
func renderRow(fragments pdf.TextHorizontal) string {
	var sb strings.Builder
	cursor := 0.0

	for i, frag := range fragments {
		if frag.S == "" {
			continue
		}

		if i > 0 {
			gap := frag.X - cursor
			switch {
			case gap >= columnGapPts:
				n := int(gap / ptsPerSpace)
				if n < 2 {
					n = 2
				}
				sb.WriteString(strings.Repeat(" ", n))
			case gap > 0.5:
				sb.WriteByte(' ')
			}
		}

		sb.WriteString(frag.S)
		cursor = frag.X + frag.W
	}

	return strings.TrimRight(sb.String(), " ")
}
