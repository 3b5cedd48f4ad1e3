// Package ui serves the dashboard's HTML pages. Every page validates its
// route and query parameters, checks the session, runs its loaders and renders
// a server-side template; filter and pagination controls use htmx to swap the
// results table in place.
package ui

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

const (
	signInPath = "/sign-in"

	// resultsTarget is the id of the element htmx swaps on filter changes
	// and page turns.
	resultsTarget = "results"
)

// UI handles the web user interface.
type UI struct {
	loaders *loaders.Loaders
	logger  *slog.Logger
	secure  bool   // Use secure cookies (HTTPS)
	landing string // where signed-in users land
}

// Config holds UI configuration.
type Config struct {
	Secure      bool   // Use secure cookies for HTTPS
	LandingPath string // Default authenticated route, "/bots" when empty
}

// New creates a new UI handler.
func New(l *loaders.Loaders, logger *slog.Logger, cfg Config) *UI {
	landing := cfg.LandingPath
	if landing == "" {
		landing = "/bots"
	}
	return &UI{
		loaders: l,
		logger:  logger.With("component", "ui"),
		secure:  cfg.Secure,
		landing: landing,
	}
}

// pageData holds the values every page template reads.
func (ui *UI) pageData(r *http.Request, title string, sess *model.Session, cfg model.FeatureConfig) map[string]any {
	return map[string]any{
		"Title":   title + " - botdash",
		"Heading": title,
		"Session": sess,
		"Config":  cfg,
		"Path":    r.URL.Path,
		"Nav":     navFor(sess, cfg, r.URL.Path),
	}
}

// isFragment reports whether htmx asked for the results table only.
func isFragment(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Target") == resultsTarget
}

// redirect sends a 303. htmx requests get an HX-Redirect instead so the
// browser navigates rather than swapping a whole page into the table.
func (ui *UI) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// stripQuery redirects to the current path without its query string. It is
// the answer to a list filter that does not validate.
func (ui *UI) stripQuery(w http.ResponseWriter, r *http.Request, errs []model.FieldError) {
	ui.logger.Debug("invalid query, redirecting to unfiltered page",
		"path", r.URL.Path, "errors", (&schema.Error{Fields: errs}).Error())
	ui.redirect(w, r, r.URL.Path)
}

func signInURL(redirectTo string) string {
	q := url.Values{}
	q.Set("redirectTo", redirectTo)
	return signInPath + "?" + q.Encode()
}

func (ui *UI) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	ui.renderBlock(w, status, name, "layout", data)
}

func (ui *UI) renderBlock(w http.ResponseWriter, status int, name, block string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, name, block, data); err != nil {
		ui.logger.Error("template render failed", "template", name, "block", block, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderLoadError is the error boundary of a page. The end user sees the same
// generic failure whatever went wrong; the specific kind is logged.
func (ui *UI) renderLoadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errorsIsCanceled(r.Context(), err):
		ui.logger.Debug("request canceled during load", "path", r.URL.Path)
		return
	case backend.IsUnauthorized(err):
		// The session ended between the gate and the load.
		ui.redirect(w, r, signInURL(r.URL.Path))
		return
	}

	ui.logger.Error("page load failed",
		"path", r.URL.Path,
		"kind", backend.ErrorKind(err),
		"error", err)

	data := map[string]any{
		"Title":    "Something went wrong - botdash",
		"Heading":  "Something went wrong",
		"Message":  "We could not load this page. Please try again.",
		"RetryURL": r.URL.RequestURI(),
		"Session":  nil,
	}
	if isFragment(r) {
		ui.renderBlock(w, http.StatusInternalServerError, "error", "results", data)
		return
	}
	ui.render(w, http.StatusInternalServerError, "error", data)
}

func (ui *UI) renderNotFound(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":   "Not Found - botdash",
		"Heading": "Page not found",
		"Message": "The page you are looking for does not exist.",
		"Session": nil,
	}
	ui.render(w, http.StatusNotFound, "error", data)
}

// HandleNotFound renders the 404 page for unknown routes.
func (ui *UI) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	ui.renderNotFound(w, r)
}

func errorsIsCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && backend.ErrorKind(err) == backend.KindCanceled
}
