package loaders

import (
	"context"
	"strconv"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

// Admin loaders read across all teams. The backend enforces the admin role
// on the forwarded session; the pages gate on it before calling these.

// AdminListTeams loads one page of all teams.
func (l *Loaders) AdminListTeams(ctx context.Context, cookie string, f *schema.AdminTeamFilters) (model.ListResponse[model.Team], error) {
	if f == nil {
		f = &schema.AdminTeamFilters{}
	}
	q := params{}
	q.page(f.Page, l.pageSize)
	q.set("search", f.Search)
	return backend.Fetch[model.ListResponse[model.Team]](ctx, l.client, "/admin/teams", l.opts(cookie, "admin-teams", q))
}

// AdminGetTeam loads one team by id.
func (l *Loaders) AdminGetTeam(ctx context.Context, cookie string, id int) (model.Team, error) {
	resp, err := backend.Fetch[model.DetailResponse[model.Team]](ctx, l.client, detailPath("/admin/teams", strconv.Itoa(id)), l.opts(cookie, "admin-team", nil))
	return resp.Data, err
}

// AdminListUsers loads one page of all users.
func (l *Loaders) AdminListUsers(ctx context.Context, cookie string, f *schema.AdminUserFilters) (model.ListResponse[model.User], error) {
	if f == nil {
		f = &schema.AdminUserFilters{}
	}
	q := params{}
	q.page(f.Page, l.pageSize)
	q.set("search", f.Search)
	q.set("role", string(f.Role))
	return backend.Fetch[model.ListResponse[model.User]](ctx, l.client, "/admin/users", l.opts(cookie, "admin-users", q))
}

// AdminGetUser loads one user by id.
func (l *Loaders) AdminGetUser(ctx context.Context, cookie string, id int) (model.User, error) {
	resp, err := backend.Fetch[model.DetailResponse[model.User]](ctx, l.client, detailPath("/admin/users", strconv.Itoa(id)), l.opts(cookie, "admin-user", nil))
	return resp.Data, err
}

// AdminListBots loads one page of bots across teams.
func (l *Loaders) AdminListBots(ctx context.Context, cookie string, f *schema.AdminBotFilters) (model.ListResponse[model.Bot], error) {
	if f == nil {
		f = &schema.AdminBotFilters{}
	}
	q := l.botParams(f.BotFilters)
	q.setInt("team_id", f.TeamID)
	return backend.Fetch[model.ListResponse[model.Bot]](ctx, l.client, "/admin/bots", l.opts(cookie, "admin-bots", q))
}

// AdminListTickets loads one page of support tickets across teams.
func (l *Loaders) AdminListTickets(ctx context.Context, cookie string, f *schema.AdminTicketFilters) (model.ListResponse[model.Ticket], error) {
	if f == nil {
		f = &schema.AdminTicketFilters{}
	}
	q := params{}
	q.page(f.Page, l.pageSize)
	q.set("status", joinList(f.Status))
	q.setInt("team_id", f.TeamID)
	return backend.Fetch[model.ListResponse[model.Ticket]](ctx, l.client, "/admin/tickets", l.opts(cookie, "admin-tickets", q))
}

// AdminGetTicket loads one support ticket from any team.
func (l *Loaders) AdminGetTicket(ctx context.Context, cookie, id string) (model.Ticket, error) {
	resp, err := backend.Fetch[model.DetailResponse[model.Ticket]](ctx, l.client, detailPath("/admin/tickets", id), l.opts(cookie, "admin-ticket", nil))
	return resp.Data, err
}
