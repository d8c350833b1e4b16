package config

import (
	"fmt"
	"strings"
)

// Config is the main configuration struct, populated from the YAML file
// with env and flag overrides applied on top.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Security    SecurityConfig    `yaml:"security"`
	Logging     LoggingConfig     `yaml:"logging"`
	Validation  ValidationConfig  `yaml:"validation"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
}

// ServerConfig holds listen address, serving engine and TLS settings.
type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
	// Engine selects the HTTP engine: "nethttp" (default) or "fasthttp".
	Engine string    `yaml:"engine"`
	TLS    TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate configuration.
type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// StorageConfig holds the pebble DB location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SecurityConfig holds CORS, rate-limit and IP whitelist settings.
type SecurityConfig struct {
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	IPWhitelist []string `yaml:"ip_whitelist"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

// ValidationConfig holds message payload rules.
type ValidationConfig struct {
	AllowEmpty    bool `yaml:"allow_empty"`
	MaxContentLen int  `yaml:"max_content_len"`
}

// MaintenanceConfig holds configuration for the janitor sweep.
type MaintenanceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
}

// Addr returns the effective listen address. An address already carrying a
// port wins; otherwise the configured port (default 8080) is appended.
func (c *Config) Addr() string {
	addr := strings.TrimSpace(c.Server.Address)
	if strings.Contains(addr, ":") {
		return addr
	}
	port := c.Server.Port
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", addr, port)
}
