package app

import (
	"fmt"
	"net"

	"forumd/pkg/config"
	"forumd/pkg/httpx"
)

// validateConfig fails fast on settings that would otherwise surface as
// confusing runtime errors.
func validateConfig(eff config.Effective) error {
	if eff.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}
	if eff.Addr == "" {
		return fmt.Errorf("empty listen address")
	}
	if _, _, err := net.SplitHostPort(eff.Addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", eff.Addr, err)
	}
	if eff.DBPath == "" {
		return fmt.Errorf("empty db path")
	}

	switch eff.Config.Server.Engine {
	case "", httpx.EngineNetHTTP, httpx.EngineFastHTTP:
	default:
		return fmt.Errorf("unknown server engine %q", eff.Config.Server.Engine)
	}

	tls := eff.Config.Server.TLS
	if (tls.CertFile == "") != (tls.KeyFile == "") {
		return fmt.Errorf("tls cert_file and key_file must be set together")
	}

	rl := eff.Config.Security.RateLimit
	if rl.RPS < 0 || rl.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	if eff.Config.Validation.MaxContentLen < 0 {
		return fmt.Errorf("validation.max_content_len must not be negative")
	}
	return nil
}
