package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/prflight/prflight/pkg/workflow"
)

var createOptions workflow.CreateOptions

// createCmd creates a pull request with an AI-generated description.
var createCmd = &cobra.Command{
	Use:   "create <source-branch> <target-branch>",
	Short: "Create a pull request with an AI-generated description",
	Long: `Create a pull request from source to target with a description generated
from the diff between the two branches.

The repository id is inferred from the git origin remote when not configured.

Examples:
  prflight create feature/login main
  prflight create feature/login main --push --title "Add login"
  prflight create feature/login main --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		createOptions.Source = args[0]
		createOptions.Target = args[1]
		return newRunner(cfg).Create(context.Background(), createOptions)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createOptions.Title, "title", "t", "", "PR title (defaults to \"<source> into <target>\")")
	createCmd.Flags().BoolVar(&createOptions.Push, "push", false, "push the source branch to origin first")
	createCmd.Flags().BoolVar(&createOptions.DryRun, "dry-run", false, "print the API payload instead of creating the PR")
}
