package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overlays FORUMD_* environment variables onto cfg. Returns true
// when at least one variable was applied.
func ApplyEnv(cfg *Config) bool {
	used := false
	if v := os.Getenv("FORUMD_ADDR"); v != "" {
		cfg.Server.Address = v
		cfg.Server.Port = 0
		used = true
	}
	if v := os.Getenv("FORUMD_ENGINE"); v != "" {
		cfg.Server.Engine = v
		used = true
	}
	if v := os.Getenv("FORUMD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
		used = true
	}
	if v := os.Getenv("FORUMD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
		used = true
	}
	if v := os.Getenv("FORUMD_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
		used = true
	}
	if v := os.Getenv("FORUMD_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Security.RateLimit.RPS = f
			used = true
		}
	}
	if v := os.Getenv("FORUMD_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.RateLimit.Burst = n
			used = true
		}
	}
	if v := os.Getenv("FORUMD_MAINTENANCE_CRON"); v != "" {
		cfg.Maintenance.Cron = v
		cfg.Maintenance.Enabled = true
		used = true
	}
	return used
}
