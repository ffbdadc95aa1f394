package cmd

import (
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Import, list and diff pipeline snapshots",
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
