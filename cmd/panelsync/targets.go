package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Inspect the target platform registry",
}

var targetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active browser-mode targets",
	RunE:  runTargetsList,
}

func init() {
	targetsCmd.AddCommand(targetsListCmd)
	rootCmd.AddCommand(targetsCmd)
}

func runTargetsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	targets, err := a.db.ListActiveTargets(ctx)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stdout, "No active targets.")
		return nil
	}

	proxyMark := color.New(color.FgYellow).Sprint("proxy")
	for _, t := range targets {
		last := "never"
		if t.LastDistributed != nil {
			last = t.LastDistributed.Format("2006-01-02 15:04")
		}
		line := fmt.Sprintf("%s  %-16s %-10s last: %s", t.ID, t.Name, t.Category, last)
		if t.UseProxy {
			line += "  [" + proxyMark + "]"
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
