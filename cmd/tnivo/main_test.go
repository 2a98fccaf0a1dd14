package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCLIOrganizeByType(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeFile(t, "report.pdf", "pdf body")
	env.writeFile(t, "song.mp3", "mp3 body")

	out, _, err := runCLI(t, []string{"organize", env.workDir, "--by-type"}, env.configPath)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Organized 2 file(s)")

	for _, rel := range []string{"Documents/report.pdf", "Audio/song.mp3"} {
		if _, err := os.Stat(filepath.Join(env.workDir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}
}

func TestCLIOrganizeDryRunMovesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeFile(t, "report.pdf", "pdf body")

	out, _, err := runCLI(t, []string{"organize", env.workDir, "--by-type", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("organize --dry-run: %v", err)
	}
	requireContains(t, out, "Dry run, nothing was moved.")

	if _, err := os.Stat(filepath.Join(env.workDir, "report.pdf")); err != nil {
		t.Errorf("dry run must leave files in place: %v", err)
	}
}

func TestCLIOrganizeWithPattern(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeFile(t, "Show S01E01.mkv", "x")

	_, _, err := runCLI(t, []string{"organize", env.workDir, "--pattern", `^(.*) S\d+E\d+\..*$`}, env.configPath)
	if err != nil {
		t.Fatalf("organize --pattern: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.workDir, "Show", "Show S01E01.mkv")); err != nil {
		t.Errorf("expected file under capture-group folder: %v", err)
	}
}

func TestCLIOrganizeRejectsConflictingFlags(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"organize", env.workDir, "--by-type", "--pattern", `^(.*)$`}, env.configPath); err == nil {
		t.Fatal("expected --by-type with --pattern to fail")
	}
	if _, _, err := runCLI(t, []string{"organize", env.workDir, "--pattern", `^(.*)$`, "--profile", "Default"}, env.configPath); err == nil {
		t.Fatal("expected --pattern with --profile to fail")
	}
}

func TestCLIOrganizeThenReverse(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeFile(t, "report.pdf", "pdf body")

	if _, _, err := runCLI(t, []string{"organize", env.workDir, "--by-type"}, env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, _, err := runCLI(t, []string{"reverse", env.workDir}, env.configPath)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	requireContains(t, out, "Restored 1 file(s)")

	if _, err := os.Stat(filepath.Join(env.workDir, "report.pdf")); err != nil {
		t.Errorf("expected file back at the root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.workDir, "Documents")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("emptied category folder should be gone, stat err = %v", err)
	}
}

func TestCLIReverseWithoutJournal(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"reverse", env.workDir}, env.configPath); err == nil {
		t.Fatal("expected reverse without a journal to fail")
	}
}

func TestCLIOrganizeBackup(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeFile(t, "report.pdf", "pdf body")

	out, _, err := runCLI(t, []string{"organize", env.workDir, "--by-type", "--backup"}, env.configPath)
	if err != nil {
		t.Fatalf("organize --backup: %v", err)
	}
	requireContains(t, out, "Backups stored in")

	entries, err := os.ReadDir(filepath.Join(env.baseDir, "backups"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one backup run directory, entries=%v err=%v", entries, err)
	}
	backed := filepath.Join(env.baseDir, "backups", entries[0].Name(), "report.pdf")
	if _, err := os.Stat(backed); err != nil {
		t.Errorf("expected backup copy at %s: %v", backed, err)
	}
}

func TestCLIHistoryListAfterRun(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeFile(t, "report.pdf", "pdf body")

	if _, _, err := runCLI(t, []string{"organize", env.workDir, "--by-type"}, env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "category")
	requireContains(t, out, env.workDir)

	out, _, err = runCLI(t, []string{"history", "purge"}, env.configPath)
	if err != nil {
		t.Fatalf("history purge: %v", err)
	}
	requireContains(t, out, "Removed 1 run(s)")
}

func TestCLIProfileLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"profile", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("profile list: %v", err)
	}
	requireContains(t, out, "Default")

	if _, _, err := runCLI(t, []string{"profile", "save", "Episodes", `^(.*) S\d+E\d+\..*$`}, env.configPath); err != nil {
		t.Fatalf("profile save: %v", err)
	}
	out, _, err = runCLI(t, []string{"profile", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("profile list: %v", err)
	}
	requireContains(t, out, "Episodes")

	exportPath := filepath.Join(env.baseDir, "profiles.json")
	if _, _, err := runCLI(t, []string{"profile", "export", exportPath}, env.configPath); err != nil {
		t.Fatalf("profile export: %v", err)
	}

	if _, _, err := runCLI(t, []string{"profile", "delete", "Episodes"}, env.configPath); err != nil {
		t.Fatalf("profile delete: %v", err)
	}

	out, _, err = runCLI(t, []string{"profile", "import", exportPath}, env.configPath)
	if err != nil {
		t.Fatalf("profile import: %v", err)
	}
	requireContains(t, out, "Imported 1 profile(s)")
}
