package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tnivo/internal/config"
	"tnivo/internal/errs"
	"tnivo/internal/fileutil"
	"tnivo/internal/journal"
	"tnivo/internal/logging"
)

// LockFileName guards a directory against concurrent runs.
const LockFileName = ".tnivo.lock"

// Run modes recorded in plans and history.
const (
	ModeRegex    = "regex"
	ModeCategory = "category"
	ModeReverse  = "reverse"
)

const maxCollisionAttempts = 10000

// Request describes an organize run to plan.
type Request struct {
	Directory string
	Matcher   Matcher
	Recursive bool
}

// ExecuteOptions tunes how a plan is carried out.
type ExecuteOptions struct {
	// Backup copies each file into the run's backup directory before moving it.
	Backup bool
	// OnProgress, when set, is invoked after every attempted action.
	OnProgress func(completed, total int)
}

// Organizer plans and executes file moves within a target directory.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs an organizer bound to the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}
}

// Plan walks the directory and computes the moves the matcher calls for.
// Nothing on disk changes.
func (o *Organizer) Plan(ctx context.Context, req Request) (*Plan, error) {
	if req.Matcher == nil {
		return nil, errs.Wrap(errs.ErrValidation, "organize", "plan", "no matcher provided", nil)
	}
	directory, err := config.ExpandPath(req.Directory)
	if err != nil {
		return nil, errs.Wrap(errs.ErrValidation, "organize", "plan", "resolve directory", err)
	}
	info, err := os.Stat(directory)
	if err != nil {
		return nil, errs.Wrap(errs.ErrNotFound, "organize", "plan", fmt.Sprintf("directory %s", directory), err)
	}
	if !info.IsDir() {
		return nil, errs.Wrap(errs.ErrValidation, "organize", "plan", fmt.Sprintf("%s is not a directory", directory), nil)
	}

	mode := ModeCategory
	if _, ok := req.Matcher.(*RegexMatcher); ok {
		mode = ModeRegex
	}
	plan := &Plan{
		RunID:     uuid.NewString(),
		Directory: directory,
		Mode:      mode,
		Pattern:   req.Matcher.Describe(),
	}

	collect := func(path string, entry fs.DirEntry) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		subdir, ok := req.Matcher.Match(name)
		if !ok {
			return nil
		}
		destination := filepath.Join(directory, subdir, name)
		if filepath.Dir(path) == filepath.Dir(destination) {
			plan.SkippedInPlace++
			return nil
		}
		fileInfo, err := entry.Info()
		if err != nil {
			// File vanished between listing and stat; nothing to plan.
			return nil
		}
		plan.Actions = append(plan.Actions, Action{
			Source:      path,
			Destination: destination,
			Size:        fileInfo.Size(),
		})
		return nil
	}

	if req.Recursive {
		err = filepath.WalkDir(directory, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				if path == directory {
					return nil
				}
				// Never descend into hidden directories or the backup tree.
				if strings.HasPrefix(entry.Name(), ".") || path == o.cfg.Paths.BackupDir {
					return filepath.SkipDir
				}
				return nil
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			return collect(path, entry)
		})
	} else {
		var entries []fs.DirEntry
		entries, err = os.ReadDir(directory)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() || !entry.Type().IsRegular() {
					continue
				}
				if err = collect(filepath.Join(directory, entry.Name()), entry); err != nil {
					break
				}
			}
		}
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrTransient, "organize", "plan", fmt.Sprintf("walk %s", directory), err)
	}

	o.logger.Info(
		"planned organize run",
		logging.String(logging.FieldRunID, plan.RunID),
		logging.String(logging.FieldDirectory, directory),
		logging.String("mode", plan.Mode),
		logging.Bool("recursive", req.Recursive),
		logging.Int("actions", len(plan.Actions)),
		logging.Int("skipped_in_place", plan.SkippedInPlace),
	)
	return plan, nil
}

// Execute carries out a plan: every action is attempted, each completed move
// is journaled, and failures are counted rather than aborting the run.
func (o *Organizer) Execute(ctx context.Context, plan *Plan, opts ExecuteOptions) (*Summary, error) {
	if plan == nil {
		return nil, errs.Wrap(errs.ErrValidation, "organize", "execute", "nil plan", nil)
	}

	release, err := o.acquireLock(plan.Directory)
	if err != nil {
		return nil, err
	}
	defer release()

	writer, err := journal.OpenWriter(plan.Directory)
	if err != nil {
		return nil, errs.Wrap(errs.ErrTransient, "organize", "execute", "open journal", err)
	}
	defer func() {
		_ = writer.Close()
	}()

	started := time.Now()
	summary := &Summary{RunID: plan.RunID}
	if opts.Backup {
		summary.BackupDir = filepath.Join(o.cfg.Paths.BackupDir, plan.RunID)
		if err := os.MkdirAll(summary.BackupDir, 0o755); err != nil {
			return nil, errs.Wrap(errs.ErrConfiguration, "organize", "execute", "create backup directory", err)
		}
	}

	total := len(plan.Actions)
	for index, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := o.executeAction(plan, action, opts.Backup, summary, writer); err != nil {
			summary.Failed++
			o.logger.Warn(
				"move failed",
				logging.String(logging.FieldRunID, plan.RunID),
				logging.String("source", action.Source),
				logging.String("destination", action.Destination),
				logging.Error(err),
			)
		}
		if opts.OnProgress != nil {
			opts.OnProgress(index+1, total)
		}
	}

	o.logger.Info(
		"organize run completed",
		logging.String(logging.FieldRunID, plan.RunID),
		logging.String(logging.FieldDirectory, plan.Directory),
		logging.Int("moved", summary.Moved),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Int64("bytes_moved", summary.BytesMoved),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

func (o *Organizer) executeAction(plan *Plan, action Action, backup bool, summary *Summary, writer *journal.Writer) error {
	destination := action.Destination

	if _, err := os.Stat(destination); err == nil {
		if o.cfg.Organize.OnCollision == config.CollisionSkip {
			summary.Skipped++
			o.logger.Debug(
				"destination exists, skipping",
				logging.String("source", action.Source),
				logging.String("destination", destination),
			)
			return nil
		}
		probed, probeErr := fileutil.NextAvailablePath(destination, maxCollisionAttempts)
		if probeErr != nil {
			return fmt.Errorf("resolve collision: %w", probeErr)
		}
		destination = probed
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat destination: %w", err)
	}

	if backup {
		relative, err := filepath.Rel(plan.Directory, action.Source)
		if err != nil || strings.HasPrefix(relative, "..") {
			relative = filepath.Base(action.Source)
		}
		backupPath := filepath.Join(summary.BackupDir, relative)
		if err := fileutil.CopyFileVerified(action.Source, backupPath); err != nil {
			return fmt.Errorf("backup before move: %w", err)
		}
	}

	if err := fileutil.MoveFile(action.Source, destination); err != nil {
		return err
	}

	if err := writer.Append(journal.Record{
		RunID:       plan.RunID,
		Action:      journal.ActionMove,
		Source:      action.Source,
		Destination: destination,
		Timestamp:   time.Now().UTC(),
	}); err != nil {
		// The move already happened; losing the journal line only hurts
		// reversal, so surface it loudly but keep going.
		o.logger.Error(
			"journal append failed",
			logging.String("destination", destination),
			logging.Error(err),
		)
	}

	summary.Moved++
	summary.BytesMoved += action.Size
	o.logger.Debug(
		"moved file",
		logging.String("source", action.Source),
		logging.String("destination", destination),
	)
	return nil
}

func (o *Organizer) acquireLock(directory string) (func(), error) {
	lockPath := filepath.Join(directory, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, errs.Wrap(errs.ErrTransient, "organize", "lock", fmt.Sprintf("acquire %s", lockPath), err)
	}
	if !ok {
		return nil, errs.Wrap(errs.ErrConflict, "organize", "lock", fmt.Sprintf("another run is already organizing %s", directory), nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			o.logger.Warn("failed to release directory lock", logging.Error(err))
		}
		_ = os.Remove(lockPath)
	}, nil
}
