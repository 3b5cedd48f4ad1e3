package ui

import (
	"context"
	"net/http"

	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
	"golang.org/x/sync/errgroup"
)

// HandleTeam renders the caller's team with a page of its members.
func (ui *UI) HandleTeam(w http.ResponseWriter, r *http.Request) {
	res := schema.ParseQuery[schema.MemberFilters](r.URL.Query())
	if !res.OK() {
		ui.stripQuery(w, r, res.Errors)
		return
	}
	filters := res.Value

	sess, ok := ui.requireSession(w, r, "")
	if !ok {
		return
	}

	scope := ui.scope(r)
	cookie := scope.Cookie()
	g, ctx := errgroup.WithContext(r.Context())
	cfg := featureConfig(ctx, g, scope)
	team := loaders.Go(ctx, g, func(ctx context.Context) (model.Team, error) {
		return ui.loaders.GetTeam(ctx, cookie)
	})
	members := loaders.Go(ctx, g, func(ctx context.Context) (model.ListResponse[model.TeamMember], error) {
		return ui.loaders.ListTeamMembers(ctx, cookie, &filters)
	})
	if err := g.Wait(); err != nil {
		ui.renderLoadError(w, r, err)
		return
	}

	data := ui.pageData(r, "Team", sess, cfg.Value())
	data["Team"] = team.Value()
	data["Items"] = members.Value().Data
	data["Pagination"] = buildPagination(r.URL.Path, filters, members.Value())

	if isFragment(r) {
		ui.renderBlock(w, http.StatusOK, "team/show", "results", data)
		return
	}
	ui.render(w, http.StatusOK, "team/show", data)
}

// HandleBilling renders the team's plan and usage for the current period.
func (ui *UI) HandleBilling(w http.ResponseWriter, r *http.Request) {
	sess, ok := ui.requireSession(w, r, "")
	if !ok {
		return
	}
	if !ui.featureOn(w, r, billingEnabled) {
		return
	}

	scope := ui.scope(r)
	cookie := scope.Cookie()
	g, ctx := errgroup.WithContext(r.Context())
	cfg := featureConfig(ctx, g, scope)
	usage := loaders.Go(ctx, g, func(ctx context.Context) (model.Usage, error) {
		return ui.loaders.GetUsage(ctx, cookie)
	})
	team := loaders.GoOptional(ctx, g, func(ctx context.Context) (model.Team, error) {
		return ui.loaders.GetTeam(ctx, cookie)
	})
	if err := g.Wait(); err != nil {
		ui.renderLoadError(w, r, err)
		return
	}
	if err := team.Err(); err != nil {
		ui.logger.Warn("team panel unavailable on billing page", "error", err)
	}

	data := ui.pageData(r, "Billing", sess, cfg.Value())
	data["Usage"] = usage.Value()
	data["Team"] = team
	ui.render(w, http.StatusOK, "billing/show", data)
}

var ticketFilterOptions = map[string]any{
	"TicketStatuses": model.TicketStatuses,
}

// HandleSupportList renders the team's support tickets.
func (ui *UI) HandleSupportList(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.TicketFilters, model.Ticket]{
		template: "support/list",
		title:    "Support",
		feature:  supportEnabled,
		load:     (*loaders.Loaders).ListTickets,
		extra:    ticketFilterOptions,
	})(w, r)
}

// HandleSupportDetail renders one support ticket and its conversation.
func (ui *UI) HandleSupportDetail(w http.ResponseWriter, r *http.Request) {
	serveDetail(ui, detailPage[string, model.Ticket]{
		template: "support/detail",
		title:    "Support ticket",
		feature:  supportEnabled,
		param:    "uuid",
		parseID:  schema.UUID,
		load:     (*loaders.Loaders).GetTicket,
	})(w, r)
}
