package model

import "fmt"

// UnreadablePDFError means the byte stream could not be converted to text
// at all (corrupt, encrypted, not a PDF). Terminal for the request.
type UnreadablePDFError struct {
	Message string
	Cause   error
}

func (e *UnreadablePDFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable PDF: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable PDF: %s", e.Message)
}

func (e *UnreadablePDFError) Unwrap() error {
	return e.Cause
}

// NewUnreadablePDF creates a new unreadable-PDF error
func NewUnreadablePDF(message string, cause error) *UnreadablePDFError {
	return &UnreadablePDFError{Message: message, Cause: cause}
}

// TemplateError means a persisted or authored template cannot be used: a
// regex fails to compile or a field mapping index is out of range. Field
// names the offending template field so authoring UIs can highlight it.
type TemplateError struct {
	Template string
	Field    string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed template %q: %s: %s (%v)", e.Template, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed template %q: %s: %s", e.Template, e.Field, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// NewTemplateError creates a new template error
func NewTemplateError(template, field, message string, cause error) *TemplateError {
	return &TemplateError{Template: template, Field: field, Message: message, Cause: cause}
}

// ExtractionError represents extraction failures outside the per-line
// recovery path
type ExtractionError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed [%s]: %s", e.Stage, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error
func NewExtractionError(stage, message string, cause error) *ExtractionError {
	return &ExtractionError{Stage: stage, Message: message, Cause: cause}
}
