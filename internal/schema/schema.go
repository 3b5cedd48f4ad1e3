// Package schema validates untrusted input (query strings, form posts) and
// untrusted output (backend response bodies) against declarative struct
// schemas. Parsing is total: it returns a Result carrying either a typed value
// or the list of field violations, and never panics on malformed input.
package schema

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/me/botdash/pkg/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"query", "json"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})

	if err := v.RegisterValidation("localpath", isLocalPath); err != nil {
		panic(fmt.Sprintf("register localpath validator: %v", err))
	}
	return v
}

// isLocalPath accepts absolute paths on this host only, so a redirect target
// can never leave the site.
func isLocalPath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// Result is the outcome of a parse or validation: a typed value when Errors is
// empty, otherwise the field violations.
type Result[T any] struct {
	Value  T
	Errors []model.FieldError
}

// OK reports whether validation succeeded.
func (r Result[T]) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil on success and an *Error listing the violations otherwise.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Fields: r.Errors}
}

// Error lists every field violation of a failed validation.
type Error struct {
	Fields []model.FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fail[T any](errs ...model.FieldError) Result[T] {
	return Result[T]{Errors: errs}
}

// Validate checks an already-decoded value against its struct tags.
// Nil pointers are accepted: a nullable body decodes to nil.
func Validate[T any](v T) Result[T] {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return Result[T]{Value: v}
	}
	if reflect.Indirect(rv).Kind() != reflect.Struct {
		return Result[T]{Value: v}
	}
	if err := validate.Struct(v); err != nil {
		return Result[T]{Value: v, Errors: fieldErrors(err, reflect.Indirect(rv).Type().Name())}
	}
	return Result[T]{Value: v}
}

// fieldErrors converts validator errors to model.FieldError, with paths
// relative to the root struct.
func fieldErrors(err error, root string) []model.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.FieldError{{Message: err.Error()}}
	}
	out := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, model.FieldError{
			Field:   fe.Field(),
			Path:    strings.TrimPrefix(fe.Namespace(), root+"."),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid", "uuid4":
		return "must be a UUID"
	case "email":
		return "must be an email address"
	case "url":
		return "must be a URL"
	case "eq":
		return "must equal " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "gtfield", "gtefield":
		return "must not be before " + fe.Param()
	case "localpath":
		return "must be a local path"
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
