package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/prflight/prflight/pkg/config"
	"github.com/prflight/prflight/pkg/workflow"
)

var reviewOptions workflow.ReviewOptions

// reviewCmd generates a review comment for the diff between two branches.
var reviewCmd = &cobra.Command{
	Use:   "review <source-branch> <target-branch>",
	Short: "Generate an AI review and post it as a PR comment",
	Long: `Review the diff between source and target and post the result as a comment
on the pull request. Without a PR id or service context the review is only
printed.

Examples:
  prflight review feature/login main --pr-id 42
  prflight review feature/login main --pr-id 42 --update-description
  prflight review feature/login main --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reviewOptions.Source = args[0]
		reviewOptions.Target = args[1]
		if reviewOptions.PRID == 0 {
			reviewOptions.PRID = envPRID()
		}
		if !cmd.Flags().Changed("update-description") {
			reviewOptions.UpdateDescription = cfg.Review.UpdateDescription
		}
		return newRunner(cfg).Review(context.Background(), reviewOptions)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().IntVar(&reviewOptions.PRID, "pr-id", 0, "pull request id (defaults to SYSTEM_PULLREQUEST_PULLREQUESTID)")
	reviewCmd.Flags().BoolVar(&reviewOptions.UpdateDescription, "update-description", false, "also update the PR description")
	reviewCmd.Flags().BoolVar(&reviewOptions.DryRun, "dry-run", false, "print the API payloads instead of posting")
}

// runLegacyReview handles the pipeline invocation form with two positional
// arguments and every option taken from the environment.
func runLegacyReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := workflow.ReviewOptions{
		Source:            args[0],
		Target:            args[1],
		PRID:              envPRID(),
		UpdateDescription: cfg.Review.UpdateDescription,
		DryRun:            config.ParseBool(os.Getenv("AI_DRY_RUN")),
	}
	return newRunner(cfg).Review(context.Background(), opts)
}
