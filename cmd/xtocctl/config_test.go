package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xtocctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Profile != "CopyPaste" {
		t.Fatalf("default profile = %q, want CopyPaste", cfg.Profile)
	}
	if cfg.DBPath != "xtoc.db" {
		t.Fatalf("default db path = %q, want xtoc.db", cfg.DBPath)
	}
	if cfg.Roster != "" || cfg.Bundle != "" {
		t.Fatalf("roster/bundle should default empty, got %q %q", cfg.Roster, cfg.Bundle)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := writeConfig(t, "profile = \"js8call\"\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Profile != "js8call" {
		t.Fatalf("profile = %q, want js8call", cfg.Profile)
	}
	if cfg.DBPath != "xtoc.db" {
		t.Fatalf("undefined db_path should keep default, got %q", cfg.DBPath)
	}
}

func TestLoadConfigFullOverride(t *testing.T) {
	path := writeConfig(t, `
profile = "meshtastic"
db_path = "/var/lib/xtoc/chunks.db"
roster = "team.toml"
bundle = "team.key"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Profile != "meshtastic" {
		t.Fatalf("profile = %q", cfg.Profile)
	}
	if cfg.DBPath != "/var/lib/xtoc/chunks.db" {
		t.Fatalf("db_path = %q", cfg.DBPath)
	}
	if cfg.Roster != "team.toml" || cfg.Bundle != "team.key" {
		t.Fatalf("roster/bundle = %q %q", cfg.Roster, cfg.Bundle)
	}
}

func TestLoadConfigRejectsUnknownProfile(t *testing.T) {
	path := writeConfig(t, "profile = \"smoke-signal\"\n")

	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
