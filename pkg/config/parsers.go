package config

import (
	"flag"
	"os"
)

// Flags holds parsed command-line flag values and which were set.
type Flags struct {
	Addr   string
	DB     string
	Config string
	Set    map[string]bool
}

// Effective is the merged view of file, env and flags that the rest of the
// process consumes.
type Effective struct {
	Config *Config
	Addr   string
	DBPath string
	Source string // "flags", "env" or "config"
}

// ParseFlags parses command-line flags and records which were explicitly
// set so they can win over file and env values.
func ParseFlags() Flags {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	dbPtr := flag.String("db", "./.database", "Pebble DB path")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return Flags{Addr: *addrPtr, DB: *dbPtr, Config: *cfgPtr, Set: set}
}

// LoadEffective merges the config file (when present), env overrides and
// explicit flags, in increasing precedence.
func LoadEffective(flags Flags) (Effective, error) {
	cfgPath := flags.Config
	if !flags.Set["config"] {
		if p := os.Getenv("FORUMD_CONFIG"); p != "" {
			cfgPath = p
		}
	}

	cfg, err := Load(cfgPath)
	source := "config"
	if err != nil {
		if !os.IsNotExist(err) {
			return Effective{}, err
		}
		cfg = &Config{}
		source = "flags"
	}
	if ApplyEnv(cfg) {
		source = "env"
	}

	eff := Effective{Config: cfg, Source: source}

	eff.Addr = cfg.Addr()
	if flags.Set["addr"] || cfg.Server.Address == "" && cfg.Server.Port == 0 {
		eff.Addr = flags.Addr
		if flags.Set["addr"] {
			eff.Source = "flags"
		}
	}

	eff.DBPath = cfg.Storage.DBPath
	if flags.Set["db"] || eff.DBPath == "" {
		eff.DBPath = flags.DB
	}
	return eff, nil
}
