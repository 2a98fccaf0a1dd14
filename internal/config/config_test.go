package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tnivo/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "tnivo", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	wantBackupDir := filepath.Join(tempHome, ".local", "share", "tnivo", "backups")
	if cfg.Paths.BackupDir != wantBackupDir {
		t.Fatalf("unexpected backup dir: %q", cfg.Paths.BackupDir)
	}
	if cfg.Organize.OnCollision != config.CollisionRename {
		t.Fatalf("expected rename collision policy by default, got %q", cfg.Organize.OnCollision)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if len(cfg.Profiles) != 4 {
		t.Fatalf("expected 4 stock profiles, got %d", len(cfg.Profiles))
	}
	if cfg.Profiles[0].Name != "Default" {
		t.Fatalf("unexpected first profile: %q", cfg.Profiles[0].Name)
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tnivo.toml")
	content := strings.Join([]string{
		`[organize]`,
		`on_collision = "skip"`,
		`recursive = true`,
		``,
		`[logging]`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Organize.OnCollision != config.CollisionSkip {
		t.Fatalf("expected skip collision policy, got %q", cfg.Organize.OnCollision)
	}
	if !cfg.Organize.Recursive {
		t.Fatal("expected recursive default enabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
	// Unspecified sections keep their defaults.
	if len(cfg.Profiles) != 4 {
		t.Fatalf("expected stock profiles to survive, got %d", len(cfg.Profiles))
	}
}

func TestLoadRejectsBadCollisionPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tnivo.toml")
	if err := os.WriteFile(path, []byte("[organize]\non_collision = \"clobber\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown collision policy")
	}
}

func TestLoadRejectsInvalidProfilePattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tnivo.toml")
	content := "[[profiles]]\nname = \"Broken\"\npattern = '^(unclosed'\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for invalid pattern")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := config.Default()
	cfg.Profiles = append(cfg.Profiles, config.Profile{Name: "Series", Pattern: `^(.*) - S\d+E\d+.*$`})
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load saved config: %v", err)
	}
	if !exists {
		t.Fatal("expected saved config to exist")
	}
	last := loaded.Profiles[len(loaded.Profiles)-1]
	if last.Name != "Series" {
		t.Fatalf("expected saved profile to round-trip, got %q", last.Name)
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	expanded, err := config.ExpandPath("~/files")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if expanded != filepath.Join(tempHome, "files") {
		t.Fatalf("unexpected expansion: %q", expanded)
	}
}
