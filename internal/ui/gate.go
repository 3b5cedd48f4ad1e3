package ui

import (
	"net/http"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/pkg/model"
)

// requireSession is the session gate run at the top of every protected page,
// after parameter validation and before any protected load. It asks the
// backend for the caller's session on every page; there is no cache beyond
// the current request.
//
// Without a session it redirects to sign-in with redirectTo set to the
// current path. A session that lacks the required role is redirected to the
// landing route. The returned bool is false when a redirect was written.
func (ui *UI) requireSession(w http.ResponseWriter, r *http.Request, role model.Role) (*model.Session, bool) {
	sess, err := ui.scope(r).Session(r.Context())
	if err != nil {
		ui.logger.Warn("session check failed, treating as signed out",
			"path", r.URL.Path, "kind", backend.ErrorKind(err), "error", err)
		sess = nil
	}
	if sess != nil && sess.User.Banned {
		ui.logger.Info("banned user refused", "user", sess.User.Email, "path", r.URL.Path)
		sess = nil
	}

	if sess == nil {
		ui.redirect(w, r, signInURL(r.URL.Path))
		return nil, false
	}
	if !sess.HasRole(role) {
		ui.logger.Info("role required, redirecting to landing",
			"user", sess.User.Email, "role", sess.User.Role, "required", role, "path", r.URL.Path)
		ui.redirect(w, r, ui.landing)
		return nil, false
	}
	return sess, true
}

// currentSession returns the session for public pages without redirecting.
func (ui *UI) currentSession(r *http.Request) *model.Session {
	sess, err := ui.scope(r).Session(r.Context())
	if err != nil || sess == nil || sess.User.Banned {
		return nil
	}
	return sess
}
