package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/ledgerdesk/internal/logging"
	"github.com/five82/ledgerdesk/internal/state"
)

const defaultStatsInterval = 30 * time.Second

// StartPoller launches a background goroutine that refreshes the summary at a
// fixed cadence, starting immediately. It returns right away.
func StartPoller(ctx context.Context, store *state.Store, fetcher state.StatsFetcher, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	if logger == nil {
		logger = logging.Discard()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			refresh(ctx, store, fetcher, logger)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, fetcher state.StatsFetcher, logger *slog.Logger) {
	if err := store.Refresh(ctx, fetcher); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("stats poll failed", "err", err, "failures", store.Snapshot().ConsecutiveFailures)
		return
	}
	logger.Debug("stats refreshed")
}
