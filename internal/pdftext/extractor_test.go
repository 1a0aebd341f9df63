package pdftext

import (
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/poextract/internal/model"
)

func TestNewExtractor(t *testing.T) {
	require.NotNil(t, NewExtractor())
}

func TestText_NotAPDF(t *testing.T) {
	e := NewExtractor()

	for _, data := range [][]byte{
		nil,
		[]byte("plain text, definitely not a pdf"),
		[]byte("%PDF-1.4 truncated garbage"),
	} {
		_, err := e.Text(data)
		require.Error(t, err)

		var unreadable *model.UnreadablePDFError
		assert.True(t, errors.As(err, &unreadable), "want UnreadablePDFError, got %T", err)
	}
}

func TestRenderRow(t *testing.T) {
	tests := []struct {
		name      string
		fragments pdf.TextHorizontal
		expected  string
	}{
		{
			name:      "empty row",
			fragments: nil,
			expected:  "",
		},
		{
			name: "adjacent fragments join with nothing",
			fragments: pdf.TextHorizontal{
				{S: "Produ", X: 10, W: 20},
				{S: "cto", X: 30, W: 12},
			},
			expected: "Producto",
		},
		{
			name: "word gap becomes one space",
			fragments: pdf.TextHorizontal{
				{S: "Producto", X: 10, W: 40},
				{S: "A", X: 54, W: 5},
			},
			expected: "Producto A",
		},
		{
			name: "column gap becomes a run of spaces",
			fragments: pdf.TextHorizontal{
				{S: "Producto A", X: 10, W: 50},
				{S: "2", X: 140, W: 5},
				{S: "100.50", X: 220, W: 30},
			},
			expected: "Producto A" + spaces(20) + "2" + spaces(18) + "100.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderRow(tt.fragments))
		})
	}
}

func spaces(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = ' '
	}
	return string(s)
}
