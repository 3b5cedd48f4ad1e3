package ui

import (
	"net/http"
	"net/url"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/schema"
)

// Sign-in error messages shown on the form.
const (
	msgInvalidInput       = "Enter your email address and password."
	msgInvalidCredentials = "Invalid email or password."
	msgBanned             = "This account has been suspended."
	msgUnavailable        = "Sign-in is unavailable right now. Please try again."
)

// HandleSignIn renders the sign-in page, or sends a signed-in user on to
// their destination.
func (ui *UI) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	res := schema.ParseQuery[schema.SignInPage](r.URL.Query())
	if !res.OK() {
		ui.stripQuery(w, r, res.Errors)
		return
	}
	page := res.Value
	if page.RedirectTo == "" {
		page.RedirectTo = ui.landing
	}

	if sess := ui.currentSession(r); sess != nil {
		ui.redirect(w, r, page.RedirectTo)
		return
	}

	data := map[string]any{
		"Title":      "Sign in - botdash",
		"Heading":    "Sign in",
		"Session":    nil,
		"Error":      page.Error,
		"RedirectTo": page.RedirectTo,
	}
	ui.render(w, http.StatusOK, "sign-in", data)
}

// HandleSignInPost forwards the credentials to the auth service and relays
// the session cookie it sets back to the browser.
func (ui *UI) HandleSignInPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ui.signInFailed(w, r, ui.landing, msgInvalidInput)
		return
	}

	// The destination is checked on its own: an unusable redirectTo falls
	// back to the landing route and a bad password keeps a valid one.
	redirectTo := ui.landing
	if dest := schema.ParseQuery[schema.SignInPage](url.Values{"redirectTo": r.PostForm["redirectTo"]}); dest.OK() {
		if dest.Value.RedirectTo != "" {
			redirectTo = dest.Value.RedirectTo
		}
	} else {
		ui.logger.Info("ignoring unsafe redirectTo at sign-in", "redirectTo", r.PostForm.Get("redirectTo"))
	}

	res := schema.ParseQuery[schema.SignInForm](url.Values{
		"email":    r.PostForm["email"],
		"password": r.PostForm["password"],
	})
	if !res.OK() {
		ui.signInFailed(w, r, redirectTo, msgInvalidInput)
		return
	}
	form := res.Value

	resp, cookies, err := ui.loaders.SignIn(r.Context(), form.Email, form.Password)
	if err != nil {
		if backend.IsUnauthorized(err) {
			ui.logger.Info("sign-in rejected", "email", form.Email)
			ui.signInFailed(w, r, redirectTo, msgInvalidCredentials)
			return
		}
		ui.logger.Error("sign-in failed", "kind", backend.ErrorKind(err), "error", err)
		ui.signInFailed(w, r, redirectTo, msgUnavailable)
		return
	}
	if resp.User.Banned {
		ui.logger.Info("banned user refused at sign-in", "email", form.Email)
		ui.signInFailed(w, r, redirectTo, msgBanned)
		return
	}

	ui.relayCookies(w, cookies)
	ui.logger.Info("user signed in", "email", form.Email, "role", resp.User.Role)
	ui.redirect(w, r, redirectTo)
}

// HandleSignOut ends the session at the auth service and clears it in the
// browser. When the auth service cannot be reached the browser's cookies are
// expired here instead.
func (ui *UI) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	cookies, err := ui.loaders.SignOut(r.Context(), ui.scope(r).Cookie())
	if err != nil {
		ui.logger.Warn("sign-out call failed, expiring cookies locally", "kind", backend.ErrorKind(err), "error", err)
		cookies = expired(r.Cookies())
	}
	ui.relayCookies(w, cookies)
	ui.redirect(w, r, signInPath)
}

func (ui *UI) signInFailed(w http.ResponseWriter, r *http.Request, redirectTo, msg string) {
	q := url.Values{}
	q.Set("error", msg)
	if redirectTo != "" {
		q.Set("redirectTo", redirectTo)
	}
	ui.redirect(w, r, signInPath+"?"+q.Encode())
}

func expired(cookies []*http.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, &http.Cookie{Name: c.Name, Path: "/", MaxAge: -1})
	}
	return out
}

// relayCookies copies the auth service's cookies onto our response. They are
// rescoped to this host.
func (ui *UI) relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		relayed := *c
		relayed.Domain = ""
		if relayed.Path == "" {
			relayed.Path = "/"
		}
		relayed.HttpOnly = true
		relayed.Secure = relayed.Secure || ui.secure
		if relayed.SameSite == 0 {
			relayed.SameSite = http.SameSiteLaxMode
		}
		http.SetCookie(w, &relayed)
	}
}
