package schema

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/me/botdash/pkg/model"
)

var positiveIntRx = regexp.MustCompile(`^[1-9][0-9]*$`)

// PositiveInt coerces a route slug such as "42" to an integer. Anything other
// than a canonical positive decimal ("0", "-1", "4.2", "1e3", "abc", "007")
// fails instead of producing a zero value.
func PositiveInt(slug string) Result[int] {
	if !positiveIntRx.MatchString(slug) {
		return fail[int](model.FieldError{Field: "id", Message: "must be a positive integer"})
	}
	n, err := strconv.Atoi(slug)
	if err != nil {
		return fail[int](model.FieldError{Field: "id", Message: "must be a positive integer"})
	}
	return Result[int]{Value: n}
}

// UUID coerces a route slug to a canonical lowercase hyphenated UUID.
// Braced, URN and unhyphenated spellings are rejected so each resource has a
// single URL.
func UUID(slug string) Result[string] {
	if len(slug) != 36 {
		return fail[string](model.FieldError{Field: "uuid", Message: "must be a UUID"})
	}
	id, err := uuid.Parse(slug)
	if err != nil {
		return fail[string](model.FieldError{Field: "uuid", Message: "must be a UUID"})
	}
	return Result[string]{Value: strings.ToLower(id.String())}
}
