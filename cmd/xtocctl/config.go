package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/xtoc-dev/xtoc/internal/protocol/transport"
)

// Config carries the CLI defaults a station operator sets once.
type Config struct {
	Profile string // transport profile name
	DBPath  string // chunk store location
	Roster  string // roster file, optional
	Bundle  string // key bundle token file, optional
}

func DefaultConfig() Config {
	return Config{
		Profile: transport.Default().Name,
		DBPath:  "xtoc.db",
	}
}

type fileConfig struct {
	Profile string `toml:"profile"`
	DBPath  string `toml:"db_path"`
	Roster  string `toml:"roster"`
	Bundle  string `toml:"bundle"`
}

func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("profile") {
		name := strings.TrimSpace(raw.Profile)
		if _, ok := transport.ByName(name); !ok {
			return Config{}, fmt.Errorf("load config: unknown profile %q", name)
		}
		cfg.Profile = name
	}

	if meta.IsDefined("db_path") {
		if p := strings.TrimSpace(raw.DBPath); p != "" {
			cfg.DBPath = p
		}
	}

	if meta.IsDefined("roster") {
		cfg.Roster = strings.TrimSpace(raw.Roster)
	}

	if meta.IsDefined("bundle") {
		cfg.Bundle = strings.TrimSpace(raw.Bundle)
	}

	return cfg, nil
}
