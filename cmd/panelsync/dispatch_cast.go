package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/panelsync/internal/payload"
)

var castCmd = &cobra.Command{
	Use:   "cast",
	Short: "Update a cast profile on target panels",
	Long:  "Update one cast member's profile (name, measurements, comment, photos) on every selected target panel from a JSON profile file.",
	RunE:  runCast,
}

var castFile string

func init() {
	castCmd.Flags().StringVarP(&castFile, "file", "f", "", "Path to JSON cast profile (required)")

	castCmd.MarkFlagRequired("file")

	dispatchCmd.AddCommand(castCmd)
}

func runCast(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(castFile)
	if err != nil {
		return fmt.Errorf("failed to read cast profile: %w", err)
	}

	var profile payload.CastProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("failed to parse cast profile JSON: %w", err)
	}

	for _, path := range profile.ImagePaths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("image not found: %s", path)
		}
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	return a.runJob(ctx, &profile, targetSpecs, parallel)
}
