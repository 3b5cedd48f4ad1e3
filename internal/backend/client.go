// Package backend is the typed HTTP client for the platform's REST API. Every
// call the dashboard makes to the backend goes through Fetch or Send, which
// forward the caller's session cookie, decode the JSON body and validate it
// before handing back a typed value.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/me/botdash/internal/logging"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

// Config holds the connection settings of a Client.
type Config struct {
	// BaseURL is the backend root, e.g. "https://api.example.com/v1".
	BaseURL string

	// Timeout bounds a single call. Zero means no client-side timeout; the
	// request context still applies.
	Timeout time.Duration

	// UserAgent is sent on every call when set.
	UserAgent string
}

// Client performs calls against the backend. It holds no per-user state and is
// safe for concurrent use; the session cookie is supplied per call.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a backend client. Calls are never retried.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("component", "backend-client")

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetCookieJar(nil). // cookies are per user, never shared through the client
		SetLogger(restyLogger{logger})
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{http: rc, logger: logger}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Options are the per-call parameters of Fetch and Send.
type Options struct {
	// Cookie is the inbound request's Cookie header, forwarded verbatim.
	Cookie string

	// Query parameters. Nil values are omitted from the query string.
	Query map[string]*string

	// Resource labels the call in metrics ("bots", "session", ...). Path
	// is not used as a label because it carries ids.
	Resource string
}

// Fetch issues a GET for path, decodes the JSON body into T and validates it
// against T's struct tags.
//
// It fails with *APIError on a non-2xx status, *ParseError when the body is
// not JSON, *SchemaValidationError when the JSON does not match T, and
// *TransportError when no response arrived.
func Fetch[T any](ctx context.Context, c *Client, path string, opts Options) (T, error) {
	start := time.Now()
	v, _, err := do[T](ctx, c, http.MethodGet, path, nil, opts)
	c.observe(opts.Resource, path, start, err)
	return v, err
}

// Send issues a POST with a JSON body and decodes the answer like Fetch. It
// also returns the cookies the backend set, so the caller can relay them to
// the browser. Only the auth endpoints use it.
func Send[T any](ctx context.Context, c *Client, path string, body any, opts Options) (T, []*http.Cookie, error) {
	start := time.Now()
	v, cookies, err := do[T](ctx, c, http.MethodPost, path, body, opts)
	c.observe(opts.Resource, path, start, err)
	return v, cookies, err
}

func do[T any](ctx context.Context, c *Client, method, path string, body any, opts Options) (T, []*http.Cookie, error) {
	var zero T

	req := c.http.R().SetContext(ctx)
	if opts.Cookie != "" {
		req.SetHeader("Cookie", opts.Cookie)
	}
	for _, key := range sortedKeys(opts.Query) {
		if val := opts.Query[key]; val != nil {
			req.SetQueryParam(key, *val)
		}
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, nil, &TransportError{Path: path, Err: err}
	}

	if !resp.IsSuccess() {
		return zero, nil, &APIError{
			Path:       path,
			StatusCode: resp.StatusCode(),
			Message:    errorMessage(resp.Body(), resp.StatusCode()),
		}
	}

	v, err := decode[T](path, resp.Body())
	if err != nil {
		return zero, nil, err
	}
	return v, resp.Cookies(), nil
}

// decode parses and validates a 2xx body.
func decode[T any](path string, raw []byte) (T, error) {
	var v T
	if !json.Valid(raw) {
		var perr error = errors.New("malformed JSON")
		if len(strings.TrimSpace(string(raw))) == 0 {
			perr = errors.New("empty body")
		}
		return v, &ParseError{Path: path, Body: truncate(string(raw), 256), Err: perr}
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, &SchemaValidationError{Path: path, Fields: []model.FieldError{decodeFieldError(err)}}
	}

	if res := schema.Validate(v); !res.OK() {
		var zero T
		return zero, &SchemaValidationError{Path: path, Fields: res.Errors}
	}
	return v, nil
}

func decodeFieldError(err error) model.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		return model.FieldError{
			Field:   field,
			Path:    typeErr.Field,
			Message: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
		}
	}
	return model.FieldError{Message: err.Error()}
}

// errorMessage pulls the human-readable message out of an error body. The
// backend answers either {"message": "..."}, {"error": "..."} or
// {"error": {"code": "...", "message": "..."}}.
func errorMessage(raw []byte, status int) string {
	var env struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &env) == nil {
		if env.Message != "" {
			return env.Message
		}
		var s string
		if json.Unmarshal(env.Error, &s) == nil && s != "" {
			return s
		}
		var apiErr model.APIError
		if json.Unmarshal(env.Error, &apiErr) == nil && apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return http.StatusText(status)
}

func (c *Client) observe(resource, path string, start time.Time, err error) {
	if resource == "" {
		resource = "other"
	}
	elapsed := time.Since(start)
	requestsTotal.WithLabelValues(resource, outcome(err)).Inc()
	requestDuration.WithLabelValues(resource).Observe(elapsed.Seconds())

	if err != nil {
		c.logger.Debug("backend call failed", "path", path, "kind", ErrorKind(err), "duration", elapsed, "error", err)
		return
	}
	c.logger.Debug("backend call", "path", path, "duration", elapsed)
}

func sortedKeys(m map[string]*string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// restyLogger routes resty's own diagnostics into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
