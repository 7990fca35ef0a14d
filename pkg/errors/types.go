// Package errors provides typed errors for the prflight project.
//
// This package defines domain-specific error types that provide structured
// error information for different subsystems (config, AI providers, Azure
// DevOps). All error types implement the standard error interface and support
// errors.Is() and errors.As() from the standard library and cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// AIError represents AI provider errors.
type AIError struct {
	Provider   string // e.g., "anthropic", "openai"
	Operation  string // e.g., "Chat"
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ai %s %s failed (HTTP %d): %s", e.Provider, e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ai %s %s failed: %s", e.Provider, e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *AIError) Unwrap() error {
	return e.Cause
}

// NewAIError creates a new AIError.
func NewAIError(provider, operation, message string) *AIError {
	return &AIError{Provider: provider, Operation: operation, Message: message}
}

// NewAIErrorWithStatus creates a new AIError with HTTP status code.
func NewAIErrorWithStatus(provider, operation string, statusCode int, message string) *AIError {
	return &AIError{
		Provider:   provider,
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewAIErrorWithCause creates a new AIError with an underlying cause.
func NewAIErrorWithCause(provider, operation, message string, cause error) *AIError {
	return &AIError{
		Provider:  provider,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// DevOpsError represents Azure DevOps API errors.
type DevOpsError struct {
	Operation  string // e.g., "CreatePR", "PostComment"
	StatusCode int    // HTTP status code if applicable
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *DevOpsError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("azure devops %s failed (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("azure devops %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *DevOpsError) Unwrap() error {
	return e.Cause
}

// NewDevOpsError creates a new DevOpsError.
func NewDevOpsError(operation, message string) *DevOpsError {
	return &DevOpsError{Operation: operation, Message: message}
}

// NewDevOpsErrorWithStatus creates a new DevOpsError with HTTP status code.
func NewDevOpsErrorWithStatus(operation string, statusCode int, message string) *DevOpsError {
	return &DevOpsError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewDevOpsErrorWithCause creates a new DevOpsError with an underlying cause.
func NewDevOpsErrorWithCause(operation, message string, cause error) *DevOpsError {
	return &DevOpsError{
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// WorkflowError represents orchestration errors in the create/review flows.
type WorkflowError struct {
	Step    string // e.g., "create", "review", "push"
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *WorkflowError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("workflow step %s failed: %s", e.Step, e.Message)
	}
	return "workflow error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *WorkflowError) Unwrap() error {
	return e.Cause
}

// NewWorkflowError creates a new WorkflowError.
func NewWorkflowError(step, message string) *WorkflowError {
	return &WorkflowError{Step: step, Message: message}
}

// NewWorkflowErrorWithCause creates a new WorkflowError with an underlying cause.
func NewWorkflowErrorWithCause(step, message string, cause error) *WorkflowError {
	return &WorkflowError{
		Step:    step,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsAIError checks if an error or any error in its chain is an AIError.
func IsAIError(err error) bool {
	var aiErr *AIError
	return errors.As(err, &aiErr)
}

// IsDevOpsError checks if an error or any error in its chain is a DevOpsError.
func IsDevOpsError(err error) bool {
	var doErr *DevOpsError
	return errors.As(err, &doErr)
}

// IsWorkflowError checks if an error or any error in its chain is a WorkflowError.
func IsWorkflowError(err error) bool {
	var wfErr *WorkflowError
	return errors.As(err, &wfErr)
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use pferrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
