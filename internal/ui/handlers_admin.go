package ui

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
	"golang.org/x/sync/errgroup"
)

// Admin pages gate on the admin role. A signed-in user without it is sent to
// the landing route before any admin loader runs.

// HandleAdminTeams renders all teams.
func (ui *UI) HandleAdminTeams(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.AdminTeamFilters, model.Team]{
		template: "admin/teams",
		title:    "Teams",
		role:     model.RoleAdmin,
		load:     (*loaders.Loaders).AdminListTeams,
	})(w, r)
}

// HandleAdminTeam renders one team with its most recent bots. The bots panel
// is optional: if it fails the team is still shown.
func (ui *UI) HandleAdminTeam(w http.ResponseWriter, r *http.Request) {
	id := schema.PositiveInt(chi.URLParam(r, "id"))
	if !id.OK() {
		ui.renderNotFound(w, r)
		return
	}

	sess, ok := ui.requireSession(w, r, model.RoleAdmin)
	if !ok {
		return
	}

	scope := ui.scope(r)
	cookie := scope.Cookie()
	g, ctx := errgroup.WithContext(r.Context())
	cfg := featureConfig(ctx, g, scope)
	team := loaders.Go(ctx, g, func(ctx context.Context) (model.Team, error) {
		return ui.loaders.AdminGetTeam(ctx, cookie, id.Value)
	})
	bots := loaders.GoOptional(ctx, g, func(ctx context.Context) (model.ListResponse[model.Bot], error) {
		limit := 10
		return ui.loaders.AdminListBots(ctx, cookie, &schema.AdminBotFilters{
			BotFilters: schema.BotFilters{Page: schema.Page{Limit: &limit}},
			TeamID:     &id.Value,
		})
	})
	if err := g.Wait(); err != nil {
		if backend.IsNotFound(err) {
			ui.renderNotFound(w, r)
			return
		}
		ui.renderLoadError(w, r, err)
		return
	}
	if err := bots.Err(); err != nil {
		ui.logger.Warn("recent bots panel unavailable", "team", id.Value, "kind", backend.ErrorKind(err), "error", err)
	}

	data := ui.pageData(r, "Team", sess, cfg.Value())
	data["Item"] = team.Value()
	data["RecentBots"] = bots
	ui.render(w, http.StatusOK, "admin/team", data)
}

// HandleAdminUsers renders all users.
func (ui *UI) HandleAdminUsers(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.AdminUserFilters, model.User]{
		template: "admin/users",
		title:    "Users",
		role:     model.RoleAdmin,
		load:     (*loaders.Loaders).AdminListUsers,
		extra:    map[string]any{"Roles": []model.Role{model.RoleUser, model.RoleAdmin}},
	})(w, r)
}

// HandleAdminUser renders one user.
func (ui *UI) HandleAdminUser(w http.ResponseWriter, r *http.Request) {
	serveDetail(ui, detailPage[int, model.User]{
		template: "admin/user",
		title:    "User",
		role:     model.RoleAdmin,
		param:    "id",
		parseID:  schema.PositiveInt,
		load:     (*loaders.Loaders).AdminGetUser,
	})(w, r)
}

// HandleAdminBots renders bots across all teams.
func (ui *UI) HandleAdminBots(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.AdminBotFilters, model.Bot]{
		template: "admin/bots",
		title:    "All bots",
		role:     model.RoleAdmin,
		load:     (*loaders.Loaders).AdminListBots,
		extra:    botFilterOptions,
	})(w, r)
}

// HandleAdminTickets renders support tickets across all teams.
func (ui *UI) HandleAdminTickets(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.AdminTicketFilters, model.Ticket]{
		template: "admin/tickets",
		title:    "All tickets",
		role:     model.RoleAdmin,
		load:     (*loaders.Loaders).AdminListTickets,
		extra:    ticketFilterOptions,
	})(w, r)
}

// HandleAdminTicket renders one ticket from any team.
func (ui *UI) HandleAdminTicket(w http.ResponseWriter, r *http.Request) {
	serveDetail(ui, detailPage[string, model.Ticket]{
		template: "admin/ticket",
		title:    "Support ticket",
		role:     model.RoleAdmin,
		param:    "uuid",
		parseID:  schema.UUID,
		load:     (*loaders.Loaders).AdminGetTicket,
	})(w, r)
}
