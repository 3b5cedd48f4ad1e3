package loaders

import (
	"context"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

// GetTeam loads the caller's team.
func (l *Loaders) GetTeam(ctx context.Context, cookie string) (model.Team, error) {
	resp, err := backend.Fetch[model.DetailResponse[model.Team]](ctx, l.client, "/team", l.opts(cookie, "team", nil))
	return resp.Data, err
}

// ListTeamMembers loads one page of the caller's team members.
func (l *Loaders) ListTeamMembers(ctx context.Context, cookie string, f *schema.MemberFilters) (model.ListResponse[model.TeamMember], error) {
	if f == nil {
		f = &schema.MemberFilters{}
	}
	q := params{}
	q.page(f.Page, l.pageSize)
	return backend.Fetch[model.ListResponse[model.TeamMember]](ctx, l.client, "/team/members", l.opts(cookie, "team-members", q))
}

// GetUsage loads the team's consumption for the current billing period.
func (l *Loaders) GetUsage(ctx context.Context, cookie string) (model.Usage, error) {
	resp, err := backend.Fetch[model.DetailResponse[model.Usage]](ctx, l.client, "/billing/usage", l.opts(cookie, "usage", nil))
	return resp.Data, err
}

// ListTickets loads one page of the team's support tickets.
func (l *Loaders) ListTickets(ctx context.Context, cookie string, f *schema.TicketFilters) (model.ListResponse[model.Ticket], error) {
	if f == nil {
		f = &schema.TicketFilters{}
	}
	q := params{}
	q.page(f.Page, l.pageSize)
	q.set("status", joinList(f.Status))
	return backend.Fetch[model.ListResponse[model.Ticket]](ctx, l.client, "/support/tickets", l.opts(cookie, "tickets", q))
}

// GetTicket loads one support ticket with its messages.
func (l *Loaders) GetTicket(ctx context.Context, cookie, id string) (model.Ticket, error) {
	resp, err := backend.Fetch[model.DetailResponse[model.Ticket]](ctx, l.client, detailPath("/support/tickets", id), l.opts(cookie, "ticket", nil))
	return resp.Data, err
}
