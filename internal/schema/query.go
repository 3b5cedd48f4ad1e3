package schema

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/me/botdash/pkg/model"
)

var timeType = reflect.TypeOf(time.Time{})

const dateLayout = "2006-01-02"

var decoder = newDecoder()

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("query")
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return parseTime(vals[0])
	}, time.Time{})
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		n, err := strconv.Atoi(vals[0])
		if err != nil {
			return nil, errors.New("must be an integer")
		}
		return n, nil
	}, 0)
	return d
}

// ParseQuery decodes a query string (or a parsed form) into T and validates it.
//
// Fields are bound by their `query:"name"` tag; unknown keys are ignored.
// Scalar fields accept exactly one value and treat an empty value as absent.
// Slice fields accept repeated keys, a single value or a comma-joined list,
// and normalize to an ordered list without duplicates.
//
// On failure Value is the zero T, so callers never see partially validated data.
func ParseQuery[T any](q url.Values) Result[T] {
	var v T
	rt := reflect.TypeOf(v)
	if rt == nil || rt.Kind() != reflect.Struct {
		return fail[T](model.FieldError{Message: fmt.Sprintf("schema %T is not a struct", v)})
	}

	values, errs := normalize(q, fieldsOf(rt))
	if len(errs) > 0 {
		return fail[T](errs...)
	}
	if err := decoder.Decode(&v, values); err != nil {
		return fail[T](decodeErrors(err)...)
	}
	if err := validate.Struct(&v); err != nil {
		return fail[T](fieldErrors(err, rt.Name())...)
	}
	return Result[T]{Value: v}
}

// queryFields maps each bound query key to whether it is a list.
type queryFields map[string]bool

var fieldCache sync.Map // reflect.Type -> queryFields

func fieldsOf(rt reflect.Type) queryFields {
	if f, ok := fieldCache.Load(rt); ok {
		return f.(queryFields)
	}
	f := queryFields{}
	collectFields(rt, f)
	fieldCache.Store(rt, f)
	return f
}

func collectFields(rt reflect.Type, f queryFields) {
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			collectFields(sf.Type, f)
			continue
		}
		name := sf.Tag.Get("query")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		f[name] = sf.Type.Kind() == reflect.Slice
	}
}

// normalize keeps only bound keys, flattens list values with splitList and
// drops blank scalars. A repeated scalar is an error.
func normalize(q url.Values, fields queryFields) (url.Values, []model.FieldError) {
	out := make(url.Values, len(q))
	var errs []model.FieldError
	for key, vals := range q {
		isList, bound := fields[key]
		if !bound {
			continue
		}
		if isList {
			if items := splitList(vals); len(items) > 0 {
				out[key] = items
			}
			continue
		}
		if len(vals) > 1 {
			errs = append(errs, model.FieldError{Field: key, Path: key, Message: "must be a single value"})
			continue
		}
		if raw := strings.TrimSpace(vals[0]); raw != "" {
			out[key] = []string{raw}
		}
	}
	sortFieldErrors(errs)
	return out, errs
}

func decodeErrors(err error) []model.FieldError {
	var derrs form.DecodeErrors
	if !errors.As(err, &derrs) {
		return []model.FieldError{{Message: err.Error()}}
	}
	out := make([]model.FieldError, 0, len(derrs))
	for key, e := range derrs {
		out = append(out, model.FieldError{Field: key, Path: key, Message: e.Error()})
	}
	sortFieldErrors(out)
	return out
}

func sortFieldErrors(errs []model.FieldError) {
	sort.Slice(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })
}

// parseTime accepts RFC 3339 timestamps and plain dates, normalized to UTC.
func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

// splitList flattens repeated and comma-joined values into an ordered list
// without empty items or duplicates.
func splitList(values []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			item = strings.TrimSpace(item)
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// EncodeQuery serializes a schema struct back to a query string. Absent
// values are omitted and list fields are written as repeated keys, so
// ParseQuery(EncodeQuery(v)) yields v again.
func EncodeQuery(v any) url.Values {
	q := url.Values{}
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return q
	}
	encodeStruct(rv, q)
	return q
}

func encodeStruct(rv reflect.Value, q url.Values) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			encodeStruct(fv, q)
			continue
		}
		name := sf.Tag.Get("query")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}

		if fv.Kind() == reflect.Slice {
			for j := 0; j < fv.Len(); j++ {
				q.Add(name, formatScalar(fv.Index(j)))
			}
			continue
		}
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		} else if fv.IsZero() {
			continue
		}
		q.Set(name, formatScalar(fv))
	}
}

func formatScalar(fv reflect.Value) string {
	if fv.Type() == timeType {
		return FormatTime(fv.Interface().(time.Time))
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String()
	case reflect.Int, reflect.Int64, reflect.Int32:
		return strconv.FormatInt(fv.Int(), 10)
	case reflect.Bool:
		return strconv.FormatBool(fv.Bool())
	}
	return fmt.Sprint(fv.Interface())
}

// FormatTime renders a filter time for a URL: a plain date at UTC midnight,
// otherwise RFC 3339.
func FormatTime(t time.Time) string {
	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339Nano)
}
