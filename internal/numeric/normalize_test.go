package numeric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/poextract/internal/numeric"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain integer", "42", "42"},
		{"plain decimal", "100.50", "100.5"},
		{"decimal comma", "100,50", "100.5"},
		{"single comma short fraction", "12,5", "12.5"},
		{"comma thousands", "1,234", "1234"},
		{"dot thousands with decimal comma", "1.234,56", "1234.56"},
		{"comma thousands with decimal dot", "1,234.56", "1234.56"},
		{"repeated dot thousands", "1.234.567", "1234567"},
		{"repeated dots with fraction", "1.234.56", "1234.56"},
		{"currency prefix", "$1901.00", "1901"},
		{"currency and spaces", "$ 1 234,50", "1234.5"},
		{"euro suffix", "99,90€", "99.9"},
		{"negative", "-15.25", "-15.25"},
		{"single dot decimal", "0.125", "0.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := numeric.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestParse_NotANumber(t *testing.T) {
	for _, input := range []string{"", "abc", "$", "--"} {
		_, err := numeric.Parse(input)
		assert.ErrorIs(t, err, numeric.ErrNotANumber, "input %q", input)
	}
}

func TestNormalize_KeepsDigitsOnlyInput(t *testing.T) {
	assert.Equal(t, "1901", numeric.Normalize("1901"))
}
