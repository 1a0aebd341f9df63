package model

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one diagnostic entry produced by the validator. Check names
// the rule that fired so callers can act on it programmatically.
type Finding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ValidationReport is the advisory output of validating an extraction
// result. Valid is true iff no error-level findings exist; warnings do not
// invalidate a result. Reports are returned at diagnostic boundaries and
// never persisted.
type ValidationReport struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
}

// Errors returns the messages of all error-level findings, in order.
func (r *ValidationReport) Errors() []string {
	var out []string
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f.Message)
		}
	}
	return out
}

// Warnings returns the messages of all warning-level findings, in order.
func (r *ValidationReport) Warnings() []string {
	var out []string
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f.Message)
		}
	}
	return out
}
