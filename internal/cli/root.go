// Package cli implements botctl, a terminal client for the dashboard's backend.
// It reuses the dashboard's loaders and query schemas, so filters accepted
// here are exactly those accepted by the web pages.
package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagBackend   string
	flagCookie    string
	flagTimeout   time.Duration
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagOutput    string

	logger *slog.Logger
	ld     *loaders.Loaders
)

// defaultBackend returns the default backend URL, checking BOTDASH_BACKEND_URL first.
func defaultBackend() string {
	if s := os.Getenv("BOTDASH_BACKEND_URL"); s != "" {
		return s
	}
	return "http://localhost:3001"
}

// NewRootCmd creates the root cobra command for botctl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "botctl",
		Short: "botctl - inspect meeting bots from the terminal",
		Long:  "botctl lists and inspects bots, transcripts, calendar events, teams and support tickets through the platform API.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
			client := backend.NewClient(backend.Config{
				BaseURL:   flagBackend,
				Timeout:   flagTimeout,
				UserAgent: "botctl",
			}, logger)
			ld = loaders.New(client, 0, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagBackend, "backend", defaultBackend(), "Backend API URL (or BOTDASH_BACKEND_URL env)")
	root.PersistentFlags().StringVar(&flagCookie, "cookie", "", "Cookie header to forward (default: saved by 'botctl login', or BOTDASH_COOKIE env)")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Per-call timeout (0 for none)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format (table, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newBotsCmd(),
		newTranscriptsCmd(),
		newCalendarCmd(),
		newTeamCmd(),
		newTicketsCmd(),
		newAdminCmd(),
	)

	return root
}

// cookie returns the Cookie header to forward: the flag, then the
// environment, then the saved credentials.
func cookie() string {
	if flagCookie != "" {
		return flagCookie
	}
	if c := os.Getenv("BOTDASH_COOKIE"); c != "" {
		return c
	}
	return LoadCookie()
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
