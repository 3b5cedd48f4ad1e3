// Package devbackend is a local stand-in for the dashboard's backend API. It
// serves the same wire contract from a SQLite database seeded with fixtures,
// for development and end-to-end tests.
package devbackend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/botdash/pkg/model"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

// DefaultSessionTTL is how long a sign-in lasts.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Options configures the dev backend's HTTP surface.
type Options struct {
	Features      model.FeatureConfig
	SessionTTL    time.Duration
	SecureCookies bool
}

// Server serves the backend API over a Store.
type Server struct {
	store  *Store
	opts   Options
	router chi.Router
	logger *slog.Logger
}

// NewServer creates the dev backend's HTTP handler.
func NewServer(store *Store, opts Options, logger *slog.Logger) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	s := &Server{
		store:  store,
		opts:   opts,
		router: chi.NewRouter(),
		logger: logger.With("component", "devbackend"),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/config", s.handleConfig)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/get-session", s.handleGetSession)
		r.Post("/sign-in/email", s.handleSignIn)
		r.Post("/sign-out", s.handleSignOut)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/bots", s.handleListBots)
		r.Get("/bots/{uuid}", s.handleGetBot)
		r.Get("/calendars/events", s.handleListEvents)
		r.Get("/team", s.handleGetTeam)
		r.Get("/team/members", s.handleListMembers)
		r.Get("/billing/usage", s.handleUsage)
		r.Get("/support/tickets", s.handleListTickets)
		r.Get("/support/tickets/{uuid}", s.handleGetTicket)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/teams", s.handleAdminListTeams)
			r.Get("/teams/{id}", s.handleAdminGetTeam)
			r.Get("/users", s.handleAdminListUsers)
			r.Get("/users/{id}", s.handleAdminGetUser)
			r.Get("/bots", s.handleAdminListBots)
			r.Get("/tickets", s.handleAdminListTickets)
			r.Get("/tickets/{uuid}", s.handleAdminGetTicket)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, &model.APIError{Code: model.ErrNotFound, Message: "no such endpoint"})
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

type ctxKey string

const ctxKeyUser ctxKey = "user"

func userFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(ctxKeyUser).(*model.User)
	return u
}

// currentSession resolves the session cookie. A missing or expired session
// yields nil without error.
func (s *Server) currentSession(r *http.Request) (*model.User, *model.SessionInfo, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return nil, nil, nil
	}
	return s.store.Session(r.Context(), c.Value)
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _, err := s.currentSession(r)
		if err != nil {
			s.internalError(w, "session lookup", err)
			return
		}
		if u == nil || u.Banned {
			respondError(w, http.StatusUnauthorized, &model.APIError{Code: model.ErrUnauthorized, Message: "authentication required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUser, u)))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := userFromContext(r.Context()); u == nil || !u.IsAdmin() {
			respondError(w, http.StatusForbidden, &model.APIError{Code: model.ErrForbidden, Message: "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", "error", err)
	respondError(w, http.StatusInternalServerError, &model.APIError{Code: model.ErrInternal, Message: "internal error"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, apiErr *model.APIError) {
	respondJSON(w, status, apiErr)
}

func respondDetail[T any](w http.ResponseWriter, v T) {
	respondJSON(w, http.StatusOK, model.DetailResponse[T]{Success: true, Data: v})
}

// respondList writes a list page, or a 400 for a cursor this backend did not
// issue.
func respondList[T any](s *Server, w http.ResponseWriter, resp model.ListResponse[T], err error) {
	switch {
	case errors.Is(err, ErrInvalidCursor):
		respondError(w, http.StatusBadRequest, model.NewValidationError("Invalid request",
			model.FieldError{Field: "cursor", Message: "is not a valid cursor"}))
	case err != nil:
		s.internalError(w, "list", err)
	default:
		respondJSON(w, http.StatusOK, resp)
	}
}

func sessionUser(u *model.User) model.SessionUser {
	return model.SessionUser{
		ID:        itoa(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Banned:    u.Banned,
		TeamID:    u.TeamID,
		CreatedAt: u.CreatedAt,
	}
}
