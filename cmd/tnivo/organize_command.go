package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tnivo/internal/config"
	"tnivo/internal/organizer"
	"tnivo/internal/precheck"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var (
		patternFlag   string
		profileFlag   string
		byTypeFlag    bool
		dryRunFlag    bool
		recursiveFlag bool
		backupFlag    bool
		yesFlag       bool
	)

	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Move files into folders chosen by a regex pattern or filetype",
		Long: `Organize moves every matching file in a directory into a subdirectory.

With --pattern or --profile the destination folder is named by the first
capture group of the regular expression. With --by-type files are grouped
into category folders (Video, Documents, Images, ...) by extension.

Every completed move is journaled inside the directory so the run can be
undone later with "tnivo reverse".`,
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

			if byTypeFlag && (patternFlag != "" || cmd.Flags().Changed("profile")) {
				return fmt.Errorf("--by-type cannot be combined with --pattern or --profile")
			}
			if patternFlag != "" && cmd.Flags().Changed("profile") {
				return fmt.Errorf("--pattern and --profile are mutually exclusive")
			}

			matcher, err := resolveMatcher(ctx, patternFlag, profileFlag, byTypeFlag)
			if err != nil {
				return err
			}

			recursive := cfg.Organize.Recursive
			if cmd.Flags().Changed("recursive") {
				recursive = recursiveFlag
			}
			backup := cfg.Organize.Backup
			if cmd.Flags().Changed("backup") {
				backup = backupFlag
			}

			directory, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			// Dry runs must not touch the directory, so the journal probe
			// only happens ahead of a real run.
			if !dryRunFlag {
				results := precheck.RunAll(cfg, precheck.Request{Directory: directory, Backup: backup})
				if !precheck.AllPassed(results) {
					return printPrecheckFailures(cmd, results)
				}
			}

			org := organizer.New(cfg, logger)
			runCtx := contextOrBackground(cmd)
			started := time.Now().UTC()

			plan, err := org.Plan(runCtx, organizer.Request{
				Directory: directory,
				Matcher:   matcher,
				Recursive: recursive,
			})
			if err != nil {
				return err
			}
			if plan.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to organize.")
				return nil
			}

			if dryRunFlag {
				printPlanPreview(cmd, plan)
				recordRun(cmd, ctx, plan, nil, true, started)
				return nil
			}

			proceed, err := confirmRun(cmd, plan, yesFlag, "organize")
			if err != nil {
				return err
			}
			if !proceed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			summary, err := org.Execute(runCtx, plan, organizer.ExecuteOptions{
				Backup:     backup,
				OnProgress: newProgress(cmd, len(plan.Actions), "Organizing"),
			})
			if summary != nil {
				recordRun(cmd, ctx, plan, summary, false, started)
			}
			if err != nil {
				return err
			}

			printSummary(cmd, plan, summary, "Organized")
			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) could not be moved; see the log for details", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&patternFlag, "pattern", "p", "", "Regular expression whose first capture group names the destination folder")
	cmd.Flags().StringVar(&profileFlag, "profile", "Default", "Named regex profile to organize with")
	cmd.Flags().BoolVar(&byTypeFlag, "by-type", false, "Group files into category folders by extension")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Show the planned moves without touching any files")
	cmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Include files in subdirectories")
	cmd.Flags().BoolVarP(&backupFlag, "backup", "b", false, "Copy each file into the backup directory before moving it")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// resolveMatcher picks the matcher for a run. An explicit pattern wins,
// otherwise the named profile (Default when unset) supplies one, and
// --by-type switches to extension categories.
func resolveMatcher(ctx *commandContext, pattern, profileName string, byType bool) (organizer.Matcher, error) {
	if byType {
		return organizer.NewCategoryMatcher(), nil
	}
	if pattern != "" {
		return organizer.NewRegexMatcher(pattern)
	}
	manager, err := ctx.profileManager()
	if err != nil {
		return nil, err
	}
	prof, err := manager.Get(profileName)
	if err != nil {
		return nil, err
	}
	return organizer.NewRegexMatcher(prof.Pattern)
}
