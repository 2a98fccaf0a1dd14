package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"tnivo/internal/history"
	"tnivo/internal/organizer"
	"tnivo/internal/precheck"
)

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newProgress returns a progress callback rendering a terminal bar, or nil
// when stdout is not a terminal.
func newProgress(cmd *cobra.Command, total int, label string) func(completed, total int) {
	out := cmd.OutOrStdout()
	if !isTerminal(out) || total == 0 {
		return nil
	}
	bar := progressbar.Default(int64(total), label)
	return func(completed, _ int) {
		_ = bar.Set(completed)
	}
}

// printPrecheckFailures renders failed checks and returns an error suitable
// for aborting the run.
func printPrecheckFailures(cmd *cobra.Command, results []precheck.Result) error {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "ok"
		if !result.Passed {
			status = "FAILED"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Check", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
	return fmt.Errorf("preflight checks failed")
}

// printPlanPreview lists the moves a plan would make, relative to its
// directory where possible. Terminals get a table, pipes get plain lines.
func printPlanPreview(cmd *cobra.Command, plan *organizer.Plan) {
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		rows := make([][]string, 0, len(plan.Actions))
		for _, action := range plan.Actions {
			rows = append(rows, []string{
				relativeTo(plan.Directory, action.Source),
				relativeTo(plan.Directory, action.Destination),
				humanize.Bytes(uint64(action.Size)),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Source", "Destination", "Size"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
	} else {
		for _, action := range plan.Actions {
			fmt.Fprintf(out, "%s -> %s\n",
				relativeTo(plan.Directory, action.Source),
				relativeTo(plan.Directory, action.Destination))
		}
	}
	fmt.Fprintf(out, "%d file(s), %s total. Dry run, nothing was moved.\n",
		len(plan.Actions), humanize.Bytes(uint64(plan.TotalBytes())))
}

// confirmRun prompts before mutating the filesystem. Non-interactive
// sessions and --yes skip the prompt.
func confirmRun(cmd *cobra.Command, plan *organizer.Plan, assumeYes bool, verb string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok || !isatty.IsTerminal(stdin.Fd()) {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "About to %s %d file(s) in %s. Proceed? [y/N] ", verb, len(plan.Actions), plan.Directory)
	var answer string
	if _, err := fmt.Fscanln(stdin, &answer); err != nil {
		return false, nil
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func printSummary(cmd *cobra.Command, plan *organizer.Plan, summary *organizer.Summary, verb string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d file(s) (%s)", verb, summary.Moved, humanize.Bytes(uint64(summary.BytesMoved)))
	if summary.Skipped > 0 {
		fmt.Fprintf(out, ", skipped %d", summary.Skipped)
	}
	if summary.Missing > 0 {
		fmt.Fprintf(out, ", %d no longer present", summary.Missing)
	}
	if summary.Failed > 0 {
		fmt.Fprintf(out, ", %d FAILED", summary.Failed)
	}
	fmt.Fprintln(out)
	if summary.BackupDir != "" {
		fmt.Fprintf(out, "Backups stored in %s\n", summary.BackupDir)
	}
	if plan.SkippedInPlace > 0 && verb == "Organized" {
		fmt.Fprintf(out, "%d file(s) were already in place.\n", plan.SkippedInPlace)
	}
}

// recordRun persists a run to history. History failures never fail the run.
func recordRun(cmd *cobra.Command, cmdCtx *commandContext, plan *organizer.Plan, summary *organizer.Summary, dryRun bool, started time.Time) {
	err := cmdCtx.withHistory(func(store *history.Store) error {
		if store == nil {
			return nil
		}
		run := history.Run{
			RunID:     plan.RunID,
			Mode:      plan.Mode,
			Directory: plan.Directory,
			Pattern:   plan.Pattern,
			DryRun:    dryRun,
			StartedAt: started,
		}
		if summary != nil {
			run.Moved = int64(summary.Moved)
			run.Failed = int64(summary.Failed)
			run.BytesMoved = summary.BytesMoved
		}
		run.FinishedAt = time.Now().UTC()
		_, err := store.Record(cmd.Context(), run)
		return err
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record run history: %v\n", err)
	}
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

// contextOrBackground guards against commands invoked without an execution
// context in tests.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
