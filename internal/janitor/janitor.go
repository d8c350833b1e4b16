// Package janitor runs the scheduled maintenance sweep: it recounts the
// store and refreshes the Prometheus gauges, so operators see accurate
// totals without a request-path cost.
package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"forumd/pkg/config"
	"forumd/pkg/logger"
	"forumd/pkg/store"
	"forumd/pkg/telemetry"
)

// Start launches the sweep scheduler when enabled. Returns a cancel func
// that stops the scheduler.
func Start(ctx context.Context, cfg config.MaintenanceConfig) (context.CancelFunc, error) {
	if !cfg.Enabled {
		logger.Info("janitor_disabled")
		return func() {}, nil
	}

	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = "*/5 * * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("janitor_invalid_cron", "cron", cfg.Cron)
		return nil, fmt.Errorf("invalid maintenance cron expression: %s", cfg.Cron)
	}

	ctx2, cancel := context.WithCancel(ctx)
	go run(ctx2, cronExpr)
	logger.Info("janitor_started", "cron", cronExpr)
	return cancel, nil
}

// run sleeps until each next cron tick and sweeps. gronx computes ticks so
// full cron syntax is supported.
func run(ctx context.Context, cronExpr string) {
	for {
		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("janitor_next_tick_failed", "cron", cronExpr, "error", err)
			return
		}
		select {
		case <-ctx.Done():
			logger.Info("janitor_stopping")
			return
		case <-time.After(next.Sub(now)):
		}
		Sweep()
	}
}

// Sweep recounts the store once and publishes the totals. Exposed so tests
// and admin tooling can trigger it on demand.
func Sweep() {
	questions, replies, err := store.Counts()
	if err != nil {
		logger.Error("janitor_sweep_failed", "error", err)
		return
	}
	telemetry.SetStoreGauges(questions, replies)
	logger.Info("janitor_sweep", "questions", questions, "replies", replies)
}
