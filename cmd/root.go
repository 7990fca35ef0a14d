package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prflight/prflight/pkg/bootstrap"
	"github.com/prflight/prflight/pkg/config"
	pferrors "github.com/prflight/prflight/pkg/errors"
)

var cfgFile string
var verbose bool

// Service context flags, layered over the loaded config when set.
var flagModel string
var flagProvider string
var flagOrgURL string
var flagProject string
var flagRepoID string
var flagToken string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "prflight",
	Short: "prflight - AI-assisted pull request reviews for Azure DevOps",
	Long: `prflight generates AI review comments and pull request descriptions from
a local git diff and posts them to Azure DevOps.

The legacy two-argument form runs a review with all options taken from the
environment, matching how the tool is invoked from a pipeline:

  prflight <source-branch> <target-branch>`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 {
			return runLegacyReview(cmd, args)
		}
		// Anything other than the two-argument review form is a usage
		// error: print help but still fail.
		_ = cmd.Help()
		if len(args) == 0 {
			return pferrors.New("no command given; use 'create', 'review', or 'prflight <source-branch> <target-branch>'")
		}
		return pferrors.Newf("invalid invocation: expected 'prflight <source-branch> <target-branch>' or a subcommand, got %d arguments", len(args))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	// Pre-parse global flags so configuration is available before cobra runs.
	cfgFile, verbose = bootstrap.PreParseGlobalFlags(os.Args)

	if err := initConfig(); err != nil {
		cobra.CheckErr(err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, pferrors.FormatUserError(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		_ = initConfig()
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/prflight/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "AI model name")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "AI provider override (anthropic, openai, nvidia)")
	rootCmd.PersistentFlags().StringVar(&flagOrgURL, "org-url", "", "Azure DevOps organization URL")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "Azure DevOps project")
	rootCmd.PersistentFlags().StringVar(&flagRepoID, "repo-id", "", "Azure DevOps repository name or id")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Azure DevOps bearer token")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	_, verbose, err = bootstrap.InitConfig(cfgFile, verbose)
	return err
}

// loadConfig loads the configuration and layers the service context flags
// over it. Flags win over both the config file and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagModel != "" {
		cfg.AI.Model = flagModel
	}
	if flagProvider != "" {
		cfg.AI.Provider = flagProvider
	}
	if flagOrgURL != "" {
		cfg.AzDevOps.OrgURL = flagOrgURL
	}
	if flagProject != "" {
		cfg.AzDevOps.Project = flagProject
	}
	if flagRepoID != "" {
		cfg.AzDevOps.RepoID = flagRepoID
	}
	if flagToken != "" {
		cfg.AzDevOps.Token = flagToken
	}
	return cfg, nil
}

// newLogger builds the slog logger used across the clients. Debug output is
// only emitted with --verbose.
func newLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// resetConfig clears the cached configuration. Used in tests.
func resetConfig() {
	bootstrap.Reset()
	viper.Reset()
}
