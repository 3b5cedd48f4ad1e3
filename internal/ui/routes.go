package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(ui.ScopeMiddleware)

		// Public routes.
		r.Get("/sign-in", ui.HandleSignIn)
		r.Post("/sign-in", ui.HandleSignInPost)
		r.Post("/sign-out", ui.HandleSignOut)

		// Protected routes. Each page runs the session gate itself, after
		// validating its parameters.
		r.Get("/", ui.redirectTo(ui.landing))

		r.Get("/bots", ui.HandleBotList)
		r.Get("/bots/{uuid}", ui.HandleBotDetail)
		r.Get("/transcripts", ui.HandleTranscriptList)
		r.Get("/calendar", ui.HandleCalendar)
		r.Get("/team", ui.HandleTeam)
		r.Get("/billing", ui.HandleBilling)

		r.Route("/support", func(r chi.Router) {
			r.Get("/", ui.HandleSupportList)
			r.Get("/{uuid}", ui.HandleSupportDetail)
		})

		// Admin routes (admin role required).
		r.Route("/admin", func(r chi.Router) {
			r.Get("/", ui.redirectTo("/admin/teams"))
			r.Get("/teams", ui.HandleAdminTeams)
			r.Get("/teams/{id}", ui.HandleAdminTeam)
			r.Get("/users", ui.HandleAdminUsers)
			r.Get("/users/{id}", ui.HandleAdminUser)
			r.Get("/bots", ui.HandleAdminBots)
			r.Get("/tickets", ui.HandleAdminTickets)
			r.Get("/tickets/{uuid}", ui.HandleAdminTicket)
		})

		r.NotFound(ui.HandleNotFound)
	})
}

func (ui *UI) redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// StaticHandler returns an http.Handler that serves static files from the given directory.
func StaticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.StripPrefix("/static/", fs)
}
