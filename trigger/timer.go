package trigger

import (
	"context"
	"log/slog"
	"time"
)

// Every runs a poll immediately and then once per interval until the context is cancelled.
// Failed polls are logged and the loop continues. Polls are sequential: ticks that fire
// while a poll is in progress are dropped.
func Every(ctx context.Context, interval time.Duration, runner Runner, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	tick := func() {
		if summary, err := runner.Run(ctx); err != nil {
			logger.Error("poll failed", "run", summary.Run, "error", err)
		}
	}

	logger.Info("polling", "interval", interval.String())

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("polling stopped")
			return nil

		case <-ticker.C:
			tick()
		}
	}
}
