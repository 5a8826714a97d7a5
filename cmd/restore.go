package cmd

import (
	"github.com/spf13/cobra"

	"github.com/prestafix/fixturedump/fixture"
)

var forceRestore bool

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the full fixture database from the dump file",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(manager *fixture.Manager) error {
			return manager.Restore()
		})
	},
}

var restoreAllCmd = &cobra.Command{
	Use:   "restore-all",
	Short: "Restore every table, skipping tables whose checksum is unchanged",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(manager *fixture.Manager) error {
			return manager.RestoreAllTables(forceRestore)
		})
	},
}

var restoreTablesCmd = &cobra.Command{
	Use:   "restore-tables table [table...]",
	Short: "Restore the named tables, skipping tables whose checksum is unchanged",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(manager *fixture.Manager) error {
			for _, table := range args {
				if err := manager.RestoreTable(table, forceRestore); err != nil {
					return err
				}
			}

			return nil
		})
	},
}

var restoreMatchCmd = &cobra.Command{
	Use:   "restore-match pattern",
	Short: "Restore the tables whose prefix-stripped name matches a regular expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(manager *fixture.Manager) error {
			return manager.RestoreMatchingTables(args[0], forceRestore)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{restoreAllCmd, restoreTablesCmd, restoreMatchCmd} {
		cmd.Flags().BoolVar(&forceRestore, "force", false, "restore even when the table checksum is unchanged (optional)")
	}

	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(restoreAllCmd)
	rootCmd.AddCommand(restoreTablesCmd)
	rootCmd.AddCommand(restoreMatchCmd)
}
