package errors

import (
	"fmt"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	// Check for ConfigError
	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	// Check for AIError
	var aiErr *AIError
	if As(err, &aiErr) {
		return formatAIError(aiErr)
	}

	// Check for DevOpsError
	var doErr *DevOpsError
	if As(err, &doErr) {
		return formatDevOpsError(doErr)
	}

	// Check for WorkflowError
	var wfErr *WorkflowError
	if As(err, &wfErr) {
		return formatWorkflowError(wfErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/prflight/config.toml\n")
	b.WriteString("  • Or set the matching AZDO_* / AI_* environment variables\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatAIError formats an AIError with actionable guidance based on status code.
func formatAIError(err *AIError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "AI provider error (%s) during %s: %s\n", err.Provider, err.Operation, err.Message)

	switch err.StatusCode {
	case 401:
		fmt.Fprintf(&b, "\nAuthentication failed with %s. To fix this:\n", err.Provider)
		b.WriteString("  • Set the appropriate API key environment variable\n")
		b.WriteString("    (ANTHROPIC_API_KEY/CLAUDE_API_KEY or OPENAI_API_KEY/NVIDIA_API_KEY)\n")
		b.WriteString("  • Verify your API key is valid and not expired\n")

	case 403:
		fmt.Fprintf(&b, "\nAccess denied by %s. To fix this:\n", err.Provider)
		b.WriteString("  • Check your API key permissions\n")
		b.WriteString("  • Ensure the model you're using is available to your account tier\n")

	case 429:
		fmt.Fprintf(&b, "\n%s rate limit exceeded. To fix this:\n", err.Provider)
		b.WriteString("  • Wait a few minutes before retrying\n")
		b.WriteString("  • Reduce request frequency\n")

	case 500, 502, 503, 504:
		fmt.Fprintf(&b, "\n%s server error. To fix this:\n", err.Provider)
		b.WriteString("  • Wait a few moments and try again\n")
		b.WriteString("  • Check the provider's status page\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatDevOpsError formats a DevOpsError with actionable guidance based on status code.
func formatDevOpsError(err *DevOpsError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Azure DevOps error during %s: %s\n", err.Operation, err.Message)

	switch err.StatusCode {
	case 401:
		b.WriteString("\nAuthentication failed. To fix this:\n")
		b.WriteString("  • Set AZDO_TOKEN (or SYSTEM_ACCESSTOKEN in a pipeline)\n")
		b.WriteString("  • Ensure the token has Code (read & write) scope\n")

	case 403:
		b.WriteString("\nPermission denied. To fix this:\n")
		b.WriteString("  • Ensure you have Contribute access to this repository\n")
		b.WriteString("  • In pipelines, allow the build service to contribute to pull requests\n")

	case 404:
		b.WriteString("\nResource not found. To fix this:\n")
		b.WriteString("  • Verify --org-url, --project and --repo-id are correct\n")
		b.WriteString("  • Ensure the pull request exists\n")

	case 500, 502, 503, 504:
		b.WriteString("\nAzure DevOps server error. To fix this:\n")
		b.WriteString("  • Wait a few moments and try again\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatWorkflowError formats a WorkflowError with actionable guidance.
func formatWorkflowError(err *WorkflowError) string {
	var b strings.Builder

	if err.Step != "" {
		fmt.Fprintf(&b, "Workflow error in '%s' step: %s\n", err.Step, err.Message)
	} else {
		fmt.Fprintf(&b, "Workflow error: %s\n", err.Message)
	}

	switch err.Step {
	case "create":
		b.WriteString("\nPR creation failed. To fix this:\n")
		b.WriteString("  • Set --org-url, --project, --repo-id and --token\n")
		b.WriteString("    or AZDO_ORG_URL, AZDO_PROJECT, AZDO_REPO_ID, AZDO_TOKEN\n")
		b.WriteString("  • Use --dry-run to inspect the request without sending it\n")

	case "review":
		b.WriteString("\nReview failed. To fix this:\n")
		b.WriteString("  • Check the AI provider configuration and API keys\n")
		b.WriteString("  • Try running with --verbose for more details\n")

	case "push":
		b.WriteString("\nPush failed. To fix this:\n")
		b.WriteString("  • Verify the branch exists locally and origin is reachable\n")

	default:
		b.WriteString("\nTo troubleshoot:\n")
		b.WriteString("  • Run with --verbose for more details\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
