package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/me/botdash/internal/backend"
)

// readyTimeout bounds the backend ping behind /readyz.
const readyTimeout = 3 * time.Second

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

type readyResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Kind    string `json:"kind,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleReady reports whether the backend answers the feature configuration
// endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.loaders.Ping(ctx); err != nil {
		kind := backend.ErrorKind(err)
		s.logger.Warn("backend not ready", "kind", kind, "error", err)
		respondJSON(w, http.StatusServiceUnavailable, reqID, readyResponse{
			Status:  "unavailable",
			Backend: "unreachable",
			Kind:    kind,
		})
		return
	}
	respondOK(w, reqID, readyResponse{Status: "ready", Backend: "ok"})
}
