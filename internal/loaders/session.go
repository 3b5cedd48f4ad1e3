package loaders

import (
	"context"
	"net/http"
	"sync"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/pkg/model"
)

// Session returns the caller's session, or nil when the cookie carries none.
// An expired session is reported as nil.
func (l *Loaders) Session(ctx context.Context, cookie string) (*model.Session, error) {
	s, err := backend.Fetch[*model.Session](ctx, l.client, "/auth/get-session", l.opts(cookie, "session", nil))
	if err != nil {
		return nil, err
	}
	if s != nil && s.IsExpired() {
		return nil, nil
	}
	return s, nil
}

// FeatureConfig returns the application feature configuration. The
// configuration is optional for building a page, so any failure degrades to
// every feature disabled and is only logged.
func (l *Loaders) FeatureConfig(ctx context.Context, cookie string) model.FeatureConfig {
	resp, err := backend.Fetch[model.DetailResponse[model.FeatureConfig]](ctx, l.client, "/config", l.opts(cookie, "config", nil))
	if err != nil {
		l.logger.Warn("feature config unavailable, disabling optional features",
			"kind", backend.ErrorKind(err), "error", err)
		return model.DisabledFeatures()
	}
	return resp.Data
}

// Ping asks the backend for the feature configuration without a session and
// reports whether it answered with a valid payload.
func (l *Loaders) Ping(ctx context.Context) error {
	_, err := backend.Fetch[model.DetailResponse[model.FeatureConfig]](ctx, l.client, "/config", l.opts("", "ping", nil))
	return err
}

// SignIn exchanges credentials for a session. The returned cookies must be
// relayed to the browser.
func (l *Loaders) SignIn(ctx context.Context, email, password string) (model.SignInResponse, []*http.Cookie, error) {
	return backend.Send[model.SignInResponse](ctx, l.client, "/auth/sign-in/email",
		model.SignInRequest{Email: email, Password: password}, l.opts("", "sign-in", nil))
}

// SignOut ends the caller's session and returns the cookies clearing it.
func (l *Loaders) SignOut(ctx context.Context, cookie string) ([]*http.Cookie, error) {
	_, cookies, err := backend.Send[model.SignOutResponse](ctx, l.client, "/auth/sign-out",
		struct{}{}, l.opts(cookie, "sign-out", nil))
	return cookies, err
}

// Scope is the per-request view of the loaders. It remembers the session and
// feature configuration for the lifetime of one request so that several
// components of a page can ask for them without extra round trips. A Scope
// must not outlive its request.
type Scope struct {
	loaders *Loaders
	cookie  string

	sessionOnce sync.Once
	session     *model.Session
	sessionErr  error

	configOnce sync.Once
	config     model.FeatureConfig
}

// NewScope creates the scope of one request carrying the given Cookie header.
func (l *Loaders) NewScope(cookie string) *Scope {
	return &Scope{loaders: l, cookie: cookie}
}

// Loaders returns the underlying loaders.
func (s *Scope) Loaders() *Loaders {
	return s.loaders
}

// Cookie returns the forwarded Cookie header.
func (s *Scope) Cookie() string {
	return s.cookie
}

// Session fetches the session once per scope.
func (s *Scope) Session(ctx context.Context) (*model.Session, error) {
	s.sessionOnce.Do(func() {
		s.session, s.sessionErr = s.loaders.Session(ctx, s.cookie)
	})
	return s.session, s.sessionErr
}

// FeatureConfig fetches the feature configuration once per scope.
func (s *Scope) FeatureConfig(ctx context.Context) model.FeatureConfig {
	s.configOnce.Do(func() {
		s.config = s.loaders.FeatureConfig(ctx, s.cookie)
	})
	return s.config
}
