package organizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"tnivo/internal/config"
	"tnivo/internal/errs"
	"tnivo/internal/fileutil"
	"tnivo/internal/journal"
	"tnivo/internal/logging"
)

// PlanReverse reads the directory's journal and computes the moves that
// would restore every journaled file to its original location. Entries are
// replayed newest first so chained moves unwind in order: a file journaled
// by several runs only reappears at an older record's organized path once
// the newer record has been replayed, so existence is checked per record
// during ExecuteReverse, never here.
func (o *Organizer) PlanReverse(ctx context.Context, directory string) (*Plan, error) {
	resolved, err := config.ExpandPath(directory)
	if err != nil {
		return nil, errs.Wrap(errs.ErrValidation, "reverse", "plan", "resolve directory", err)
	}
	records, malformed, err := journal.ReadAll(resolved)
	if err != nil {
		return nil, errs.Wrap(errs.ErrTransient, "reverse", "plan", "read journal", err)
	}
	if len(records) == 0 && malformed == 0 {
		return nil, errs.Wrap(errs.ErrNotFound, "reverse", "plan", fmt.Sprintf("no journal entries for %s", resolved), nil)
	}

	plan := &Plan{
		RunID:                 uuid.NewString(),
		Directory:             resolved,
		Mode:                  ModeReverse,
		MalformedJournalLines: malformed,
	}
	for i := len(records) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := records[i]
		var size int64
		if info, statErr := os.Stat(rec.Destination); statErr == nil {
			size = info.Size()
		}
		plan.Actions = append(plan.Actions, Action{
			Source:      rec.Destination,
			Destination: rec.Source,
			Size:        size,
		})
	}

	o.logger.Info(
		"planned reverse run",
		logging.String(logging.FieldRunID, plan.RunID),
		logging.String(logging.FieldDirectory, resolved),
		logging.Int("actions", len(plan.Actions)),
		logging.Int("malformed_lines", malformed),
	)
	return plan, nil
}

// ExecuteReverse replays a reverse plan strictly newest first. The journal
// is truncated only when every record was restored or was verifiably gone
// when its turn came, so a partial run can be retried.
func (o *Organizer) ExecuteReverse(ctx context.Context, plan *Plan, opts ExecuteOptions) (*Summary, error) {
	if plan == nil {
		return nil, errs.Wrap(errs.ErrValidation, "reverse", "execute", "nil plan", nil)
	}

	release, err := o.acquireLock(plan.Directory)
	if err != nil {
		return nil, err
	}
	defer release()

	summary := &Summary{RunID: plan.RunID}
	emptied := make(map[string]struct{})

	total := len(plan.Actions)
	for index, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := o.restoreFile(action, summary); err != nil {
			summary.Failed++
			o.logger.Warn(
				"restore failed",
				logging.String(logging.FieldRunID, plan.RunID),
				logging.String("source", action.Source),
				logging.String("destination", action.Destination),
				logging.Error(err),
			)
		} else {
			emptied[filepath.Dir(action.Source)] = struct{}{}
		}
		if opts.OnProgress != nil {
			opts.OnProgress(index+1, total)
		}
	}

	// Every record must be accounted for before the journal goes away:
	// restored, or verifiably gone when its turn came (Missing). Skipped
	// and failed restores keep the journal intact so the run can be
	// retried; already restored entries drop out of the next plan as
	// missing.
	if summary.Failed == 0 && summary.Skipped == 0 {
		if err := journal.Truncate(plan.Directory); err != nil {
			o.logger.Warn("failed to truncate journal", logging.Error(err))
		}
	}
	o.removeEmptiedDirs(plan.Directory, emptied)

	o.logger.Info(
		"reverse run completed",
		logging.String(logging.FieldRunID, plan.RunID),
		logging.String(logging.FieldDirectory, plan.Directory),
		logging.Int("restored", summary.Moved),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("missing", summary.Missing),
	)
	return summary, nil
}

func (o *Organizer) restoreFile(action Action, summary *Summary) error {
	// The organized path is checked at replay time, not plan time: a
	// chained record's file only reappears here once the newer record
	// restoring it has been replayed.
	info, err := os.Stat(action.Source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			summary.Missing++
			o.logger.Debug(
				"organized file no longer exists, nothing to restore",
				logging.String("source", action.Source),
			)
			return nil
		}
		return fmt.Errorf("stat organized path: %w", err)
	}

	if _, err := os.Stat(action.Destination); err == nil {
		// Something else now occupies the original path; leave both files alone.
		summary.Skipped++
		o.logger.Debug(
			"original path occupied, skipping restore",
			logging.String("destination", action.Destination),
		)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat original path: %w", err)
	}

	if err := fileutil.MoveFile(action.Source, action.Destination); err != nil {
		return err
	}
	summary.Moved++
	summary.BytesMoved += info.Size()
	o.logger.Debug(
		"restored file",
		logging.String("source", action.Source),
		logging.String("destination", action.Destination),
	)
	return nil
}

// removeEmptiedDirs prunes directories the reverse run emptied. Only
// directories under root are touched, and only when truly empty.
func (o *Organizer) removeEmptiedDirs(root string, dirs map[string]struct{}) {
	for dir := range dirs {
		if dir == root {
			continue
		}
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || rel == ".." || filepath.IsAbs(rel) || len(rel) >= 2 && rel[:2] == ".." {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) != 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			o.logger.Debug("could not remove emptied directory", logging.String("directory", dir), logging.Error(err))
		}
	}
}
