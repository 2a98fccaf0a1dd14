package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tnivo/internal/config"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage named regex profiles",
	}

	profileCmd.AddCommand(newProfileListCommand(ctx))
	profileCmd.AddCommand(newProfileSaveCommand(ctx))
	profileCmd.AddCommand(newProfileDeleteCommand(ctx))
	profileCmd.AddCommand(newProfileExportCommand(ctx))
	profileCmd.AddCommand(newProfileImportCommand(ctx))

	return profileCmd
}

func newProfileListCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.profileManager()
			if err != nil {
				return err
			}
			profiles := manager.List()

			if jsonFlag {
				type row struct {
					Name    string `json:"name"`
					Pattern string `json:"regex"`
				}
				out := make([]row, 0, len(profiles))
				for _, profile := range profiles {
					out = append(out, row{Name: profile.Name, Pattern: profile.Pattern})
				}
				return writeJSON(cmd, out)
			}

			rows := make([][]string, 0, len(profiles))
			for _, profile := range profiles {
				rows = append(rows, []string{profile.Name, profile.Pattern})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Pattern"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit profiles as JSON")
	return cmd
}

func newProfileSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <pattern>",
		Short: "Save a new profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.profileManager()
			if err != nil {
				return err
			}
			if err := manager.Save(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q\n", args[0])
			return nil
		},
	}
}

func newProfileDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.profileManager()
			if err != nil {
				return err
			}
			if err := manager.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", args[0])
			return nil
		},
	}
}

func newProfileExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export all profiles to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.profileManager()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if err := manager.ExportJSON(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d profile(s) to %s\n", len(manager.List()), path)
			return nil
		},
	}
}

func newProfileImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import profiles from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.profileManager()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			added, skipped, err := manager.ImportJSON(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d profile(s)", added)
			if skipped > 0 {
				fmt.Fprintf(out, ", skipped %d (duplicate or invalid)", skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
