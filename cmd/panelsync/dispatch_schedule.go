package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/panelsync/internal/payload"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Publish a work schedule to target panels",
	Long:  "Publish a set of schedule entries (cast, date, start, end, status) to every selected target panel from a JSON schedule file.",
	RunE:  runSchedule,
}

var scheduleFile string

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleFile, "file", "f", "", "Path to JSON schedule (required)")

	scheduleCmd.MarkFlagRequired("file")

	dispatchCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(scheduleFile)
	if err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}

	var sched payload.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return fmt.Errorf("failed to parse schedule JSON: %w", err)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	return a.runJob(ctx, &sched, targetSpecs, parallel)
}
