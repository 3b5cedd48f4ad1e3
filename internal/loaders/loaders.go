// Package loaders holds the server-side data loaders: one function per backend
// resource that maps validated filters to the backend's wire parameters, calls
// the typed client and returns the validated payload.
package loaders

import (
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/logging"
	"github.com/me/botdash/internal/schema"
)

// DefaultPageSize is used when neither the filters nor the configuration set a
// page size.
const DefaultPageSize = 50

// Loaders fetches dashboard data from the backend on behalf of one caller,
// identified by the forwarded cookie passed to each method.
type Loaders struct {
	client   *backend.Client
	pageSize int
	logger   *slog.Logger
}

// New creates the loaders over a backend client.
func New(client *backend.Client, pageSize int, logger *slog.Logger) *Loaders {
	if logger == nil {
		logger = logging.Discard()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loaders{
		client:   client,
		pageSize: pageSize,
		logger:   logger.With("component", "loaders"),
	}
}

// PageSize returns the page size applied when a filter leaves it unset.
func (l *Loaders) PageSize() int {
	return l.pageSize
}

func (l *Loaders) opts(cookie, resource string, q params) backend.Options {
	return backend.Options{Cookie: cookie, Query: q, Resource: resource}
}

// params is a backend query under construction. Empty values are never
// stored, so they are omitted from the request.
type params map[string]*string

func (p params) set(key, val string) {
	if val != "" {
		p[key] = &val
	}
}

func (p params) setInt(key string, n *int) {
	if n != nil {
		p.set(key, strconv.Itoa(*n))
	}
}

func (p params) setTime(key string, t *time.Time) {
	if t != nil {
		p.set(key, isoTime(*t))
	}
}

// page maps cursor pagination, filling in the default page size.
func (p params) page(pg schema.Page, defaultSize int) {
	p.set("cursor", pg.Cursor)
	limit := defaultSize
	if pg.Limit != nil {
		limit = *pg.Limit
	}
	p.set("limit", strconv.Itoa(limit))
}

// joinList serializes an enum set the way the backend expects: comma-joined.
func joinList[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = string(it)
	}
	return strings.Join(parts, ",")
}

// isoTime renders a timestamp as ISO 8601 in UTC with millisecond precision.
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func detailPath(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}
