package llm

import "fmt"

// ConfigurationError means generation is disabled or missing a credential.
// It is raised before any network attempt and never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// TransportError is a failed exchange with the backend: a non-2xx status or
// a network failure.
type TransportError struct {
	StatusCode int
	Body       string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Body)
	}
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %v", e.Cause)
	}
	return "transport error"
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// GenerationFailure is returned once every attempt has failed.
type GenerationFailure struct {
	Attempts int
	Last     error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Last
}
