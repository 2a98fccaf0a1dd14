package profile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tnivo/internal/config"
	"tnivo/internal/errs"
	"tnivo/internal/profile"
)

func newManager(t *testing.T) (*profile.Manager, string) {
	t.Helper()
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "config.toml")
	return profile.NewManager(&cfg, path), path
}

func TestSaveAndGet(t *testing.T) {
	manager, path := newManager(t)

	if err := manager.Save("Series", `^(.*) - S\d+E\d+.*$`); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := manager.Get("Series")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Pattern != `^(.*) - S\d+E\d+.*$` {
		t.Fatalf("unexpected pattern: %q", got.Pattern)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config to be persisted: %v", err)
	}
}

func TestSaveRejectsDuplicates(t *testing.T) {
	manager, _ := newManager(t)
	err := manager.Save("Default", `^(.*)$`)
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestSaveRejectsInvalidPattern(t *testing.T) {
	manager, _ := newManager(t)
	err := manager.Save("Broken", `^(unclosed`)
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	manager, _ := newManager(t)
	if err := manager.Delete("Default"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := manager.Get("Default"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := manager.Delete("Default"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found for second delete, got %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	manager, _ := newManager(t)
	exportPath := filepath.Join(t.TempDir(), "profiles.json")
	if err := manager.ExportJSON(exportPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	// Import into a config with no profiles.
	empty := config.Default()
	empty.Profiles = nil
	importer := profile.NewManager(&empty, filepath.Join(t.TempDir(), "config.toml"))
	added, skipped, err := importer.ImportJSON(exportPath)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if added != 4 || skipped != 0 {
		t.Fatalf("expected 4 added 0 skipped, got %d/%d", added, skipped)
	}
}

func TestImportSkipsDuplicatesAndInvalid(t *testing.T) {
	manager, _ := newManager(t)
	path := filepath.Join(t.TempDir(), "profiles.json")
	payload := `[
  {"name": "Default", "regex": "^(.*)$"},
  {"name": "Broken", "regex": "^(unclosed"},
  {"name": "", "regex": "^(.*)$"},
  {"name": "Fresh", "regex": "^(fresh)$"}
]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write import file: %v", err)
	}

	added, skipped, err := manager.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 added, got %d", added)
	}
	if skipped != 3 {
		t.Fatalf("expected 3 skipped, got %d", skipped)
	}
	if _, err := manager.Get("Fresh"); err != nil {
		t.Fatalf("expected Fresh profile to exist: %v", err)
	}
}

func TestImportRejectsBadJSON(t *testing.T) {
	manager, _ := newManager(t)
	path := filepath.Join(t.TempDir(), "nope.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := manager.ImportJSON(path); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
