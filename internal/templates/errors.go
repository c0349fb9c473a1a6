package templates

import "fmt"

// TemplateError represents an error parsing the embedded section templates.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure executing a section template.
type RenderError struct {
	Section Section
	Cause   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: section %q: %v", e.Section, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
