package app

import (
	"context"
	"fmt"

	"forumd/internal/janitor"
	"forumd/pkg/api"
	"forumd/pkg/banner"
	"forumd/pkg/config"
	"forumd/pkg/httpx"
	"forumd/pkg/logger"
	"forumd/pkg/security"
	"forumd/pkg/service"
	"forumd/pkg/store"
	"forumd/pkg/validation"
)

// App encapsulates the server components and lifecycle.
type App struct {
	eff       config.Effective
	version   string
	commit    string
	buildDate string
}

// New validates the effective config, installs validation rules and opens
// the store. It does not start the HTTP server; call Run to start it and
// block until shutdown.
func New(eff config.Effective, version, commit, buildDate string) (*App, error) {
	if err := validateConfig(eff); err != nil {
		return nil, err
	}

	validation.SetRules(validation.Rules{
		AllowEmpty:    eff.Config.Validation.AllowEmpty,
		MaxContentLen: eff.Config.Validation.MaxContentLen,
	})

	if err := store.Open(eff.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", eff.DBPath, err)
	}

	return &App{eff: eff, version: version, commit: commit, buildDate: buildDate}, nil
}

// Run starts the janitor and the HTTP server and blocks until ctx is
// canceled or a fatal server error occurs. The store is closed on the way
// out.
func (a *App) Run(ctx context.Context) error {
	stopJanitor, err := janitor.Start(ctx, a.eff.Config.Maintenance)
	if err != nil {
		_ = store.Close()
		return err
	}
	// publish initial store totals before the first tick
	janitor.Sweep()

	a.printBanner()

	sec := security.SecConfig{
		AllowedOrigins: a.eff.Config.Security.CORS.AllowedOrigins,
		RPS:            a.eff.Config.Security.RateLimit.RPS,
		Burst:          a.eff.Config.Security.RateLimit.Burst,
		IPWhitelist:    a.eff.Config.Security.IPWhitelist,
	}
	h := api.Handler(service.NewPebble(), sec)

	tls := a.eff.Config.Server.TLS
	serveErr := httpx.Serve(ctx, a.eff.Config.Server.Engine, a.eff.Addr, h, tls.CertFile, tls.KeyFile)

	stopJanitor()
	if cerr := store.Close(); cerr != nil {
		logger.Error("store_close_failed", "error", cerr)
	}
	return serveErr
}

func (a *App) printBanner() {
	verStr := a.version
	if a.commit != "" && a.commit != "none" {
		verStr += " (" + a.commit + ")"
	}
	if a.buildDate != "" && a.buildDate != "unknown" {
		verStr += " @ " + a.buildDate
	}
	banner.Print(a.eff.Addr, a.eff.DBPath, a.eff.Config.Server.Engine, a.eff.Source, verStr)
}
