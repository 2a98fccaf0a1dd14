package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tnivo/internal/config"
	"tnivo/internal/errs"
	"tnivo/internal/journal"
	"tnivo/internal/organizer"
	"tnivo/internal/precheck"
)

func newReverseCommand(ctx *commandContext) *cobra.Command {
	var dryRunFlag bool
	var yesFlag bool

	cmd := &cobra.Command{
		Use:   "reverse <directory>",
		Short: "Undo a previous organize run using the directory's journal",
		Long: `Reverse replays the directory's journal newest first, moving every
organized file back to where it came from. Files whose original path is now
occupied are left in place, and the journal survives until every entry has
been restored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			directory, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if !journal.Exists(directory) {
				return errs.Wrap(errs.ErrNotFound, "reverse", "plan",
					fmt.Sprintf("no journal found in %s; nothing to reverse", directory), nil)
			}

			if !dryRunFlag {
				results := precheck.RunAll(cfg, precheck.Request{Directory: directory})
				if !precheck.AllPassed(results) {
					return printPrecheckFailures(cmd, results)
				}
			}

			org := organizer.New(cfg, logger)
			runCtx := contextOrBackground(cmd)
			started := time.Now().UTC()

			plan, err := org.PlanReverse(runCtx, directory)
			if err != nil {
				return err
			}
			if plan.MalformedJournalLines > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %d malformed journal line(s)\n", plan.MalformedJournalLines)
			}
			if plan.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to restore.")
				return nil
			}

			if dryRunFlag {
				printPlanPreview(cmd, plan)
				recordRun(cmd, ctx, plan, nil, true, started)
				return nil
			}

			proceed, err := confirmRun(cmd, plan, yesFlag, "restore")
			if err != nil {
				return err
			}
			if !proceed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			summary, err := org.ExecuteReverse(runCtx, plan, organizer.ExecuteOptions{
				OnProgress: newProgress(cmd, len(plan.Actions), "Restoring"),
			})
			if summary != nil {
				recordRun(cmd, ctx, plan, summary, false, started)
			}
			if err != nil {
				return err
			}

			printSummary(cmd, plan, summary, "Restored")
			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) could not be restored; see the log for details", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Show the planned restores without touching any files")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
