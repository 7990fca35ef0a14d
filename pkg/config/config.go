// Package config loads and validates the prflight configuration.
//
// Configuration comes from three layers, later layers winning: defaults,
// the config file (~/.config/prflight/config.toml, managed through viper),
// and environment variables. Azure DevOps settings additionally honor the
// predefined pipeline variables (SYSTEM_COLLECTIONURI and friends) so the
// tool works inside an Azure Pipelines job with no explicit setup.
package config

import (
	"os"

	"github.com/spf13/viper"

	pferrors "github.com/prflight/prflight/pkg/errors"
)

// Config represents the application configuration.
// The snapshot is immutable after Load; components receive it by reference
// and never read ambient state directly.
type Config struct {
	AI       AIConfig       `mapstructure:"ai"`
	AzDevOps AzDevOpsConfig `mapstructure:"azdevops"`
	Review   ReviewConfig   `mapstructure:"review"`
}

// AIConfig holds AI provider configuration.
type AIConfig struct {
	Provider string `mapstructure:"provider"` // explicit override: "anthropic", "claude", "openai", "chatgpt", "nvidia"
	Model    string `mapstructure:"model"`    // e.g., "claude-sonnet-4-20250514", "gpt-4o"
	APIKey   string `mapstructure:"api_key"`  // fallback key when no provider env var is set

	// OpenAIEndpoint overrides the OpenAI-compatible chat completions URL,
	// e.g. for NVIDIA or a local gateway. Empty means the OpenAI default.
	OpenAIEndpoint string `mapstructure:"openai_endpoint"`
}

// AzDevOpsConfig holds the Azure DevOps service context.
type AzDevOpsConfig struct {
	OrgURL  string `mapstructure:"org_url"` // e.g., "https://dev.azure.com/myorg/"
	Project string `mapstructure:"project"`
	RepoID  string `mapstructure:"repo_id"` // repository name or GUID; inferred from git origin when empty
	Token   string `mapstructure:"token"`   // bearer token (AZDO_TOKEN env var takes precedence)
}

// ReviewConfig holds review flow options.
type ReviewConfig struct {
	UpdateDescription bool `mapstructure:"update_description"` // also patch the PR description after a review
}

// Default model when neither config nor AI_MODEL is set.
const DefaultModel = "claude-sonnet-4-20250514"

// Load loads the configuration from viper and applies environment overrides.
func Load() (*Config, error) {
	config := &Config{}

	setDefaults()

	if err := viper.Unmarshal(config); err != nil {
		return nil, pferrors.NewConfigErrorWithCause("", "failed to unmarshal config", err)
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, pferrors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if c.AI.Model == "" {
		return pferrors.NewConfigError("ai.model", "model must not be empty")
	}
	return nil
}

// HasServiceContext reports whether all Azure DevOps fields required for a
// real (non-preview) mutating call are present.
func (c *AzDevOpsConfig) HasServiceContext() bool {
	return c.OrgURL != "" && c.Project != "" && c.RepoID != "" && c.Token != ""
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("ai.provider", "")
	viper.SetDefault("ai.model", DefaultModel)
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.openai_endpoint", "")

	viper.SetDefault("azdevops.org_url", "")
	viper.SetDefault("azdevops.project", "")
	viper.SetDefault("azdevops.repo_id", "")
	viper.SetDefault("azdevops.token", "")

	viper.SetDefault("review.update_description", false)
}

// applyEnvOverrides layers well-known environment variables over the config
// file values. Each setting has an ordered candidate list; the first
// non-empty value wins. Azure Pipelines predefined variables come last so an
// explicit AZDO_* variable always takes precedence.
func applyEnvOverrides(config *Config) {
	config.AI.Provider = firstEnv(config.AI.Provider, "AI_PROVIDER")
	config.AI.Model = firstEnv(config.AI.Model, "AI_MODEL")
	config.AI.OpenAIEndpoint = firstEnv(config.AI.OpenAIEndpoint, "OPENAI_API_URL")

	config.AzDevOps.OrgURL = firstEnv(config.AzDevOps.OrgURL, "AZDO_ORG_URL", "SYSTEM_COLLECTIONURI")
	config.AzDevOps.Project = firstEnv(config.AzDevOps.Project, "AZDO_PROJECT", "SYSTEM_TEAMPROJECT")
	config.AzDevOps.RepoID = firstEnv(config.AzDevOps.RepoID, "AZDO_REPO_ID", "BUILD_REPOSITORY_ID")
	config.AzDevOps.Token = firstEnv(config.AzDevOps.Token, "AZDO_TOKEN", "SYSTEM_ACCESSTOKEN", "SYSTEM_ACCESS_TOKEN")

	if ParseBool(os.Getenv("AI_UPDATE_PR_DESCRIPTION")) {
		config.Review.UpdateDescription = true
	}
}

// firstEnv returns the first non-empty value among the named environment
// variables, falling back to the config file value.
func firstEnv(configValue string, names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return configValue
}

// ParseBool interprets the loose boolean forms accepted in environment
// variables: "1", "true" and "yes" (case-insensitive) are true.
func ParseBool(value string) bool {
	switch value {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	default:
		return false
	}
}
