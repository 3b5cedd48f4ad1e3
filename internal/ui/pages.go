package ui

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
	"golang.org/x/sync/errgroup"
)

// featureFlag selects one switch of the feature configuration.
type featureFlag func(model.FeatureConfig) bool

func transcriptionEnabled(c model.FeatureConfig) bool { return c.TranscriptionEnabled }
func calendarEnabled(c model.FeatureConfig) bool      { return c.CalendarEnabled }
func billingEnabled(c model.FeatureConfig) bool       { return c.BillingEnabled }
func supportEnabled(c model.FeatureConfig) bool       { return c.SupportEnabled }

// listPage describes a filtered, cursor-paginated list page.
type listPage[F, T any] struct {
	template string
	title    string
	role     model.Role
	feature  featureFlag
	load     func(*loaders.Loaders, context.Context, string, *F) (model.ListResponse[T], error)
	extra    map[string]any
}

// serveList builds the handler of a list page:
// validate the query, gate on the session, load, render.
func serveList[F, T any](ui *UI, p listPage[F, T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := schema.ParseQuery[F](r.URL.Query())
		if !res.OK() {
			ui.stripQuery(w, r, res.Errors)
			return
		}
		filters := res.Value

		sess, ok := ui.requireSession(w, r, p.role)
		if !ok {
			return
		}
		if !ui.featureOn(w, r, p.feature) {
			return
		}

		scope := ui.scope(r)
		g, ctx := errgroup.WithContext(r.Context())
		cfg := featureConfig(ctx, g, scope)
		list := loaders.Go(ctx, g, func(ctx context.Context) (model.ListResponse[T], error) {
			return p.load(ui.loaders, ctx, scope.Cookie(), &filters)
		})
		if err := g.Wait(); err != nil {
			ui.renderLoadError(w, r, err)
			return
		}

		data := ui.pageData(r, p.title, sess, cfg.Value())
		data["Filters"] = filters
		data["Items"] = list.Value().Data
		data["Pagination"] = buildPagination(r.URL.Path, filters, list.Value())
		for k, v := range p.extra {
			data[k] = v
		}

		if isFragment(r) {
			ui.renderBlock(w, http.StatusOK, p.template, "results", data)
			return
		}
		ui.render(w, http.StatusOK, p.template, data)
	}
}

// detailPage describes a page showing one entity addressed by a route id.
type detailPage[K, T any] struct {
	template string
	title    string
	role     model.Role
	feature  featureFlag
	param    string
	parseID  func(string) schema.Result[K]
	load     func(*loaders.Loaders, context.Context, string, K) (T, error)
}

// serveDetail builds the handler of a detail page. A malformed id is a 404
// answered before the session check, so it never reaches the backend.
func serveDetail[K, T any](ui *UI, p detailPage[K, T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := p.parseID(chi.URLParam(r, p.param))
		if !id.OK() {
			ui.renderNotFound(w, r)
			return
		}

		sess, ok := ui.requireSession(w, r, p.role)
		if !ok {
			return
		}
		if !ui.featureOn(w, r, p.feature) {
			return
		}

		scope := ui.scope(r)
		g, ctx := errgroup.WithContext(r.Context())
		cfg := featureConfig(ctx, g, scope)
		item := loaders.Go(ctx, g, func(ctx context.Context) (T, error) {
			return p.load(ui.loaders, ctx, scope.Cookie(), id.Value)
		})
		if err := g.Wait(); err != nil {
			if backend.IsNotFound(err) {
				ui.renderNotFound(w, r)
				return
			}
			ui.renderLoadError(w, r, err)
			return
		}

		data := ui.pageData(r, p.title, sess, cfg.Value())
		data["Item"] = item.Value()
		ui.render(w, http.StatusOK, p.template, data)
	}
}

// featureOn answers 404 for pages of a disabled feature. The configuration is
// read before the page's own loads so a disabled page never fetches data.
func (ui *UI) featureOn(w http.ResponseWriter, r *http.Request, flag featureFlag) bool {
	if flag == nil {
		return true
	}
	if !flag(ui.scope(r).FeatureConfig(r.Context())) {
		ui.renderNotFound(w, r)
		return false
	}
	return true
}

// featureConfig loads the configuration alongside the page's data. It never
// fails: the scope degrades it to disabled features.
func featureConfig(ctx context.Context, g *errgroup.Group, scope *loaders.Scope) *loaders.Async[model.FeatureConfig] {
	return loaders.Go(ctx, g, func(ctx context.Context) (model.FeatureConfig, error) {
		return scope.FeatureConfig(ctx), nil
	})
}

// pagination holds the cursor links of a list page. Links keep the active
// filters and only swap the cursor.
type pagination struct {
	HasPrev  bool
	HasNext  bool
	PrevURL  string
	NextURL  string
	ResetURL string
	Count    int
}

func buildPagination[T any](path string, filters any, list model.ListResponse[T]) pagination {
	base := schema.EncodeQuery(filters)
	base.Del("cursor")

	p := pagination{
		HasPrev:  list.HasPrev(),
		HasNext:  list.HasNext(),
		ResetURL: path,
		Count:    len(list.Data),
	}
	if p.HasNext {
		p.NextURL = pageURL(path, base, list.NextCursor())
	}
	if p.HasPrev {
		p.PrevURL = pageURL(path, base, list.PreviousCursor())
	}
	return p
}

func pageURL(path string, base url.Values, cursor string) string {
	q := make(url.Values, len(base)+1)
	for k, v := range base {
		q[k] = append([]string(nil), v...)
	}
	q.Set("cursor", cursor)
	return path + "?" + q.Encode()
}
