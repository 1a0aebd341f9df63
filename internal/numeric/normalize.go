// Package numeric normalizes locale-formatted amounts found in PDF text
// into decimals. Supplier documents mix thousands separators, decimal
// commas and currency symbols; everything funnels through Parse so the
// rules live in exactly one place.
package numeric

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotANumber is returned when the input contains no digits at all.
var ErrNotANumber = errors.New("not a number")

// Normalize rewrites a formatted amount into plain decimal syntax:
// currency symbols and spaces are stripped, thousands separators removed,
// and a decimal comma becomes a decimal point.
//
// Rules:
//   - when both '.' and ',' occur, the rightmost one is the decimal
//     separator and the other is dropped;
//   - a single ',' followed by exactly three digits is a thousands
//     separator ("1,234"), otherwise it is a decimal comma ("12,5");
//   - repeated occurrences of one separator are thousands separators,
//     except a final group of one or two digits ("1.234,5" style);
//   - a single '.' is always a decimal point.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}

	case lastComma >= 0:
		cleaned = resolveSingleSeparator(cleaned, ',')

	case lastDot >= 0:
		cleaned = resolveSingleSeparator(cleaned, '.')
	}

	return cleaned
}

// resolveSingleSeparator handles input with only one separator kind.
func resolveSingleSeparator(s string, sep byte) string {
	first := strings.IndexByte(s, sep)
	last := strings.LastIndexByte(s, sep)
	trailing := len(s) - last - 1

	if first != last {
		// Repeated separators are thousands groups; keep a short final
		// group as the fraction ("1.234.567" vs "1.234.56").
		if trailing >= 1 && trailing <= 2 {
			head := strings.ReplaceAll(s[:last], string(sep), "")
			return head + "." + s[last+1:]
		}
		return strings.ReplaceAll(s, string(sep), "")
	}

	if sep == ',' && trailing == 3 {
		return strings.ReplaceAll(s, ",", "")
	}
	return strings.Replace(s, string(sep), ".", 1)
}

// Parse normalizes s and converts it to a decimal.
func Parse(s string) (decimal.Decimal, error) {
	n := Normalize(s)
	if !strings.ContainsAny(n, "0123456789") {
		return decimal.Zero, ErrNotANumber
	}
	n = strings.TrimSuffix(n, ".")
	return decimal.NewFromString(n)
}
