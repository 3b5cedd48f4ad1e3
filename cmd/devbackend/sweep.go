package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/me/botdash/internal/devbackend"
)

const sweepInterval = 10 * time.Minute

// sweepSessions deletes expired sessions until ctx is done.
func sweepSessions(ctx context.Context, st *devbackend.Store, logger *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := st.DeleteExpiredSessions(ctx)
			if err != nil {
				logger.Warn("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
