package main

import (
	"github.com/spf13/cobra"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Distribute a payload to target panels",
	Long:  "Distribute one payload (diary post, cast profile, or schedule) to the selected target panels, one login and one form submission per target.",
}

var (
	targetSpecs []string
	parallel    int
)

func init() {
	dispatchCmd.PersistentFlags().StringSliceVarP(&targetSpecs, "targets", "t", []string{"all"}, "Target ids (comma-separated UUIDs) or 'all' for every active target")
	dispatchCmd.PersistentFlags().IntVarP(&parallel, "parallel", "p", 0, "Worker count; 0 or 1 dispatches sequentially")

	rootCmd.AddCommand(dispatchCmd)
}
