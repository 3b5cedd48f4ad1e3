// Command devbackend serves the dashboard's backend API from a local SQLite
// database, seeded with development fixtures on first start.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/me/botdash/internal/devbackend"
	"github.com/me/botdash/internal/logging"
	"github.com/me/botdash/pkg/model"
)

func main() {
	// .env is read first; flag defaults come from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", envOr("DEVBACKEND_ADDR", ":3001"), "Listen address")
	dbPath := flag.String("db", envOr("DEVBACKEND_DB", ":memory:"), "SQLite database path")
	seedFile := flag.String("seed", "", "YAML fixtures file (default: built-in fixtures)")
	noSeed := flag.Bool("no-seed", false, "Do not load fixtures")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "text", "Log format (text, json)")
	secure := flag.Bool("secure-cookies", false, "Mark session cookies Secure")
	ttl := flag.Duration("session-ttl", devbackend.DefaultSessionTTL, "Session lifetime")

	var features model.FeatureConfig
	flag.BoolVar(&features.BillingEnabled, "billing", true, "Enable the billing feature")
	flag.BoolVar(&features.CalendarEnabled, "calendar", true, "Enable the calendar feature")
	flag.BoolVar(&features.SupportEnabled, "support", true, "Enable the support feature")
	flag.BoolVar(&features.TranscriptionEnabled, "transcription", true, "Enable the transcripts feature")
	flag.StringVar(&features.SupportEmail, "support-email", "support@botdash.test", "Support contact address")

	flag.Parse()

	logger := logging.NewLogger(logging.ParseLevel(*logLevel), *logFormat)

	st, err := devbackend.NewStore(*dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}

	if !*noSeed {
		data := devbackend.DefaultSeed()
		if *seedFile != "" {
			if data, err = os.ReadFile(*seedFile); err != nil {
				fmt.Fprintf(os.Stderr, "read seed: %v\n", err)
				os.Exit(1)
			}
		}
		empty, err := st.Empty(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inspect database: %v\n", err)
			os.Exit(1)
		}
		if empty {
			if err := st.Seed(ctx, data, time.Now()); err != nil {
				fmt.Fprintf(os.Stderr, "seed: %v\n", err)
				os.Exit(1)
			}
		} else {
			logger.Info("database already populated, skipping seed", "path", *dbPath)
		}
	}

	srv := devbackend.NewServer(st, devbackend.Options{
		Features:      features,
		SessionTTL:    *ttl,
		SecureCookies: *secure,
	}, logger)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(sigCtx, st, logger)

	go func() {
		logger.Info("dev backend starting", "addr", *addr, "db", *dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
