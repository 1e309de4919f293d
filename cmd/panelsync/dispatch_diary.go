package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/panelsync/internal/payload"
)

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Post a diary entry to target panels",
	Long:  "Post a diary entry (title, body, optional images) to every selected target panel's diary section.",
	RunE:  runDiary,
}

var (
	diaryTitle     string
	diaryBody      string
	diaryBodyFile  string
	diaryImages    []string
	diaryPublishAt string
)

func init() {
	diaryCmd.Flags().StringVar(&diaryTitle, "title", "", "Diary title (required)")
	diaryCmd.Flags().StringVar(&diaryBody, "body", "", "Diary body text")
	diaryCmd.Flags().StringVar(&diaryBodyFile, "body-file", "", "Path to a file containing the diary body")
	diaryCmd.Flags().StringSliceVar(&diaryImages, "image", nil, "Image file to attach (repeatable)")
	diaryCmd.Flags().StringVar(&diaryPublishAt, "publish-at", "", "Scheduled publish time, RFC 3339 (panels without scheduling publish immediately)")

	diaryCmd.MarkFlagRequired("title")

	dispatchCmd.AddCommand(diaryCmd)
}

func runDiary(cmd *cobra.Command, args []string) error {
	if diaryBody == "" && diaryBodyFile == "" {
		return fmt.Errorf("either --body or --body-file must be provided")
	}
	if diaryBody != "" && diaryBodyFile != "" {
		return fmt.Errorf("--body and --body-file are mutually exclusive; provide only one")
	}

	body := diaryBody
	if diaryBodyFile != "" {
		data, err := os.ReadFile(diaryBodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		body = string(data)
	}

	post := &payload.DiaryPost{
		Title:      diaryTitle,
		Body:       body,
		ImagePaths: diaryImages,
	}
	if diaryPublishAt != "" {
		at, err := time.Parse(time.RFC3339, diaryPublishAt)
		if err != nil {
			return fmt.Errorf("invalid --publish-at (want RFC 3339): %w", err)
		}
		post.PublishAt = &at
	}

	for _, path := range diaryImages {
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

	return a.runJob(ctx, post, targetSpecs, parallel)
}
