package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var errNotSignedIn = errors.New("not signed in (run 'botctl login')")

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ld.Session(cmd.Context(), cookie())
			if err != nil {
				return fmt.Errorf("load session: %w", err)
			}
			if sess == nil {
				return errNotSignedIn
			}
			w := out(cmd)
			if flagOutput == "json" {
				return printJSON(w, sess)
			}
			team := "-"
			if sess.User.TeamID != nil {
				team = fmt.Sprint(*sess.User.TeamID)
			}
			return printFields(w,
				"Name", sess.DisplayName(),
				"Email", sess.User.Email,
				"Role", sess.User.Role,
				"Team", team,
				"Expires", humanize.Time(sess.Session.ExpiresAt),
			)
		},
	}
}

type teamView struct {
	Team    model.Team                           `json:"team"`
	Members model.ListResponse[model.TeamMember] `json:"members"`
	Usage   *model.Usage                         `json:"usage,omitempty"`
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show your team",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Show team details, members and usage",
	}
	query := bindQuery(show)
	show.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.MemberFilters](query())
		if err != nil {
			return err
		}
		c := cookie()

		g, ctx := errgroup.WithContext(cmd.Context())
		team := loaders.Go(ctx, g, func(ctx context.Context) (model.Team, error) {
			return ld.GetTeam(ctx, c)
		})
		members := loaders.Go(ctx, g, func(ctx context.Context) (model.ListResponse[model.TeamMember], error) {
			return ld.ListTeamMembers(ctx, c, f)
		})
		usage := loaders.GoOptional(ctx, g, func(ctx context.Context) (model.Usage, error) {
			return ld.GetUsage(ctx, c)
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("load team: %w", err)
		}

		view := teamView{Team: team.Value(), Members: members.Value()}
		if usage.State() == loaders.Loaded {
			u := usage.Value()
			view.Usage = &u
		} else {
			logger.Debug("usage unavailable", "error", usage.Err())
		}
		return printTeam(out(cmd), view)
	}
	cmd.AddCommand(show)
	return cmd
}

func printTeam(w io.Writer, v teamView) error {
	if flagOutput == "json" {
		return printJSON(w, v)
	}
	fields := []any{
		"Team", v.Team.Name,
		"Plan", v.Team.Plan,
		"Bots", v.Team.BotCount,
		"Created", ago(v.Team.CreatedAt),
	}
	if u := v.Usage; u != nil {
		limit := "unmetered"
		if u.BotHoursLimit > 0 {
			limit = fmt.Sprintf("%s h (%d%%)", humanize.Ftoa(u.BotHoursLimit), u.Percent())
		}
		fields = append(fields, "Usage", fmt.Sprintf("%.1f h of %s", u.BotHoursUsed, limit))
	}
	if err := printFields(w, fields...); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nMembers:")
	return printPage(w, v.Members, []string{"EMAIL", "NAME", "ROLE", "JOINED"}, func(m model.TeamMember) []any {
		return []any{m.Email, orDash(m.Name), m.Role, ago(m.JoinedAt)}
	})
}

var ticketHeaders = []string{"UUID", "SUBJECT", "STATUS", "CREATED BY", "UPDATED"}

func ticketRow(t model.Ticket) []any {
	return []any{t.UUID, t.Subject, t.Status, orDash(t.CreatedBy), ago(t.UpdatedAt)}
}

func newTicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List and read support tickets",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List your team's support tickets",
	}
	query := bindQuery(list, queryFlag{"status", "status", "Comma-separated ticket statuses"})
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.TicketFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.ListTickets(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list tickets: %w", err)
		}
		return printPage(out(cmd), resp, ticketHeaders, ticketRow)
	}

	get := &cobra.Command{
		Use:   "get <uuid>",
		Short: "Show a ticket and its conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := schema.UUID(args[0])
			if err := id.Err(); err != nil {
				return fmt.Errorf("invalid ticket id: %w", err)
			}
			t, err := ld.GetTicket(cmd.Context(), cookie(), id.Value)
			if err != nil {
				return fmt.Errorf("get ticket: %w", err)
			}
			return printTicket(out(cmd), t)
		},
	}
	cmd.AddCommand(list, get)
	return cmd
}

func printTicket(w io.Writer, t model.Ticket) error {
	if flagOutput == "json" {
		return printJSON(w, t)
	}
	if err := printFields(w,
		"UUID", t.UUID,
		"Subject", t.Subject,
		"Status", t.Status,
		"Team", orDash(t.TeamName),
		"Created by", orDash(t.CreatedBy),
		"Created", ago(t.CreatedAt),
	); err != nil {
		return err
	}
	for _, m := range t.Messages {
		who := m.Author
		if m.FromStaff {
			who += " (staff)"
		}
		fmt.Fprintf(w, "\n%s, %s:\n%s\n", who, ago(m.CreatedAt), m.Body)
	}
	return nil
}
