package precheck

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"tnivo/internal/config"
	"tnivo/internal/journal"
)

// Result reports the outcome of a single pre-run check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Request describes the run about to happen so only relevant checks execute.
type Request struct {
	Directory string
	Backup    bool
}

// RunAll executes the checks an organize or reverse run depends on.
func RunAll(cfg *config.Config, req Request) []Result {
	results := []Result{
		CheckDirectoryAccess("Target directory", req.Directory),
		CheckJournalWritable(req.Directory),
	}
	if req.Backup && cfg != nil {
		results = append(results, CheckBackupDir(cfg.Paths.BackupDir))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckJournalWritable verifies the journal can be opened for appending.
func CheckJournalWritable(dir string) Result {
	const name = "Journal"
	writer, err := journal.OpenWriter(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", journal.PathFor(dir), err)}
	}
	_ = writer.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", journal.PathFor(dir))}
}

// CheckBackupDir verifies the backup directory exists or can be created.
func CheckBackupDir(path string) Result {
	const name = "Backup directory"
	if path == "" {
		return Result{Name: name, Detail: "backup_dir not configured"}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	probe := filepath.Join(path, ".tnivo-precheck")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	_ = os.Remove(probe)
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}
