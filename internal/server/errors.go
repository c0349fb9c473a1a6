package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alexramsey92/ai-web-design-workbench/internal/fetch"
	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
	"github.com/alexramsey92/ai-web-design-workbench/internal/schemas"
	"github.com/alexramsey92/ai-web-design-workbench/internal/validation"
)

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	Key      string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// ErrUnavailable indicates an optional collaborator is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *validation.Error
		schemaErr     *schemas.ValidationError
		configErr     *llm.ConfigurationError
		genErr        *llm.GenerationFailure
		notFound      *ErrNotFound
		unavailable   *ErrUnavailable
		fetchErr      *fetch.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &configErr), errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &genErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
