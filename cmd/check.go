package cmd

import (
	"github.com/spf13/cobra"

	"github.com/prestafix/fixturedump/fixture"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the full fixture dump file exists",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOfflineManager(func(manager *fixture.Manager) error {
			return manager.CheckDump()
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
