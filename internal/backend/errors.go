package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/me/botdash/pkg/model"
)

// Error kinds reported by ErrorKind.
const (
	KindAPI       = "api"
	KindParse     = "parse"
	KindSchema    = "schema"
	KindTransport = "transport"
	KindCanceled  = "canceled"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s: HTTP %d: %s", e.Path, e.StatusCode, e.Message)
}

// NotFound reports whether the backend answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ParseError means a 2xx body was not JSON.
type ParseError struct {
	Path string
	Body string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("backend %s: response is not valid JSON: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaValidationError means a JSON body did not match the expected shape.
type SchemaValidationError struct {
	Path   string
	Fields []model.FieldError
}

// Error implements the error interface.
func (e *SchemaValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("backend %s: unexpected response shape: %s", e.Path, strings.Join(parts, "; "))
}

// TransportError means no HTTP response was received at all.
type TransportError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a backend error for logs and metrics.
func ErrorKind(err error) string {
	var apiErr *APIError
	var parseErr *ParseError
	var schemaErr *SchemaValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &schemaErr):
		return KindSchema
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindTransport
	}
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// IsUnauthorized reports whether the backend rejected the forwarded session.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}
