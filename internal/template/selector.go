package template

import (
	"fmt"
	"strings"

	"github.com/retailops/poextract/internal/model"
)

// Select picks the first active template whose detect keywords occur in
// the text, compiled and ready to apply. Templates are tried in the order
// given, so the caller's ordering (most recently updated first, from the
// store) is the tie-break. A matching template that fails to compile is
// skipped with a warning and selection continues; one bad template must
// not block the others.
//
// A nil result with no error means no template matched and the caller
// should use the generic fallback parser.
func Select(text string, templates []model.ParsingTemplate) (*Compiled, []string) {
	lower := strings.ToLower(text)
	var warnings []string

	for i := range templates {
		tpl := &templates[i]
		if !tpl.Active {
			continue
		}
		if !keywordMatch(lower, tpl.DetectKeywords) {
			continue
		}

		compiled, err := Compile(tpl)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("template %q skipped: %v", tpl.Name, err))
			continue
		}
		return compiled, warnings
	}

	return nil, warnings
}

func keywordMatch(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
