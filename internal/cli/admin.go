package cli

import (
	"fmt"
	"io"

	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
	"github.com/spf13/cobra"
)

var teamIDFlag = queryFlag{"team-id", "teamId", "Only this team"}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office commands (admin accounts only)",
	}
	cmd.AddCommand(newAdminTeamsCmd(), newAdminUsersCmd(), newAdminBotsCmd(), newAdminTicketsCmd())
	return cmd
}

func parseID(kind, arg string) (int, error) {
	id := schema.PositiveInt(arg)
	if err := id.Err(); err != nil {
		return 0, fmt.Errorf("invalid %s id: %w", kind, err)
	}
	return id.Value, nil
}

func newAdminTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "teams", Short: "List and inspect teams"}

	list := &cobra.Command{Use: "list", Short: "List all teams"}
	query := bindQuery(list, queryFlag{"search", "search", "Match team names"})
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.AdminTeamFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.AdminListTeams(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		return printPage(out(cmd), resp, []string{"ID", "NAME", "PLAN", "MEMBERS", "BOTS", "CREATED"}, func(t model.Team) []any {
			return []any{t.ID, t.Name, t.Plan, t.MemberCount, t.BotCount, ago(t.CreatedAt)}
		})
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("team", args[0])
			if err != nil {
				return err
			}
			t, err := ld.AdminGetTeam(cmd.Context(), cookie(), id)
			if err != nil {
				return fmt.Errorf("get team: %w", err)
			}
			w := out(cmd)
			if flagOutput == "json" {
				return printJSON(w, t)
			}
			return printFields(w,
				"ID", t.ID,
				"Name", t.Name,
				"Plan", t.Plan,
				"Owner", orDash(t.OwnerEmail),
				"Members", t.MemberCount,
				"Bots", t.BotCount,
				"Created", ago(t.CreatedAt),
			)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "List and inspect users"}

	list := &cobra.Command{Use: "list", Short: "List all users"}
	query := bindQuery(list,
		queryFlag{"search", "search", "Match email or name"},
		queryFlag{"role", "role", "Only this role (user, admin)"},
	)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.AdminUserFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.AdminListUsers(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return printPage(out(cmd), resp, []string{"ID", "EMAIL", "ROLE", "TEAM", "BANNED", "LAST SEEN"}, func(u model.User) []any {
			return []any{u.ID, u.Email, u.Role, orDash(u.TeamName), u.Banned, agoPtr(u.LastSeenAt)}
		})
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			u, err := ld.AdminGetUser(cmd.Context(), cookie(), id)
			if err != nil {
				return fmt.Errorf("get user: %w", err)
			}
			return printUser(out(cmd), u)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func printUser(w io.Writer, u model.User) error {
	if flagOutput == "json" {
		return printJSON(w, u)
	}
	banned := "no"
	if u.Banned {
		banned = "yes"
		if u.BanReason != "" {
			banned += " (" + u.BanReason + ")"
		}
	}
	return printFields(w,
		"ID", u.ID,
		"Email", u.Email,
		"Name", orDash(u.Name),
		"Role", u.Role,
		"Team", orDash(u.TeamName),
		"Banned", banned,
		"Created", ago(u.CreatedAt),
		"Last seen", agoPtr(u.LastSeenAt),
	)
}

func newAdminBotsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "bots", Short: "List bots across all teams"}

	list := &cobra.Command{Use: "list", Short: "List bots, newest first"}
	query := bindQuery(list, append(botFilterFlags, teamIDFlag)...)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.AdminBotFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.AdminListBots(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list bots: %w", err)
		}
		return printPage(out(cmd), resp, append([]string{"TEAM"}, botHeaders...), func(b model.Bot) []any {
			return append([]any{b.TeamID}, botRow(b)...)
		})
	}

	cmd.AddCommand(list)
	return cmd
}

func newAdminTicketsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tickets", Short: "List and read tickets from all teams"}

	list := &cobra.Command{Use: "list", Short: "List support tickets"}
	query := bindQuery(list,
		queryFlag{"status", "status", "Comma-separated ticket statuses"},
		teamIDFlag,
	)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.AdminTicketFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.AdminListTickets(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list tickets: %w", err)
		}
		return printPage(out(cmd), resp, append([]string{"TEAM"}, ticketHeaders...), func(t model.Ticket) []any {
			return append([]any{orDash(t.TeamName)}, ticketRow(t)...)
		})
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
			t, err := ld.AdminGetTicket(cmd.Context(), cookie(), id.Value)
			if err != nil {
				return fmt.Errorf("get ticket: %w", err)
			}
			return printTicket(out(cmd), t)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}
