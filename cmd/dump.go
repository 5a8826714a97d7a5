package cmd

import (
	"github.com/spf13/cobra"

	"github.com/prestafix/fixturedump/fixture"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the full fixture database to the dump file",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(manager *fixture.Manager) error {
			return manager.Dump()
		})
	},
}

var dumpTablesCmd = &cobra.Command{
	Use:   "dump-tables",
	Short: "Dump every table individually and persist its checksum",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(manager *fixture.Manager) error {
			return manager.DumpAllTables()
		})
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(dumpTablesCmd)
}
