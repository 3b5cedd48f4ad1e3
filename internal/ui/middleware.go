package ui

import (
	"context"
	"net/http"

	"github.com/me/botdash/internal/loaders"
)

// Context keys for request-scoped data.
type contextKey string

const (
	scopeContextKey contextKey = "scope"
)

// ScopeMiddleware opens the request scope: the forwarded cookie plus the
// per-request memo of the session and feature configuration. Nothing in the
// scope survives the request.
func (ui *UI) ScopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := ui.loaders.NewScope(r.Header.Get("Cookie"))
		ctx := context.WithValue(r.Context(), scopeContextKey, scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// scope returns the request scope, opening one if the middleware did not run.
func (ui *UI) scope(r *http.Request) *loaders.Scope {
	if s, ok := r.Context().Value(scopeContextKey).(*loaders.Scope); ok {
		return s
	}
	return ui.loaders.NewScope(r.Header.Get("Cookie"))
}
