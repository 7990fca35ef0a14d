package errors

import (
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "with field",
			err:  NewConfigError("azdevops.token", "token is required"),
			want: "config error in azdevops.token: token is required",
		},
		{
			name: "without field",
			err:  NewConfigError("", "something is wrong"),
			want: "config error: something is wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAIError_Error(t *testing.T) {
	err := NewAIErrorWithStatus("openai", "Chat", 429, "rate limited")
	want := "ai openai Chat failed (HTTP 429): rate limited"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = NewAIError("anthropic", "Chat", "no api key")
	want = "ai anthropic Chat failed: no api key"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDevOpsError_Error(t *testing.T) {
	err := NewDevOpsErrorWithStatus("CreatePR", 404, "repository not found")
	want := "azure devops CreatePR failed (HTTP 404): repository not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := New("root cause")
	err := NewDevOpsErrorWithCause("GetPR", "request failed", cause)

	if !Is(err, cause) {
		t.Error("expected Is() to find the wrapped cause")
	}

	var doErr *DevOpsError
	if !As(err, &doErr) {
		t.Fatal("expected As() to match DevOpsError")
	}
	if doErr.Operation != "GetPR" {
		t.Errorf("Operation = %q, want %q", doErr.Operation, "GetPR")
	}
}

func TestTypeChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"config error", NewConfigError("f", "m"), IsConfigError, true},
		{"wrapped config error", Wrap(NewConfigError("f", "m"), "ctx"), IsConfigError, true},
		{"ai error", NewAIError("openai", "Chat", "m"), IsAIError, true},
		{"devops error", NewDevOpsError("GetPR", "m"), IsDevOpsError, true},
		{"workflow error", NewWorkflowError("review", "m"), IsWorkflowError, true},
		{"plain error is not config", New("plain"), IsConfigError, false},
		{"ai error is not devops", NewAIError("openai", "Chat", "m"), IsDevOpsError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	msg := FormatUserError(NewDevOpsErrorWithStatus("PostComment", 401, "unauthorized"))
	if !strings.Contains(msg, "AZDO_TOKEN") {
		t.Errorf("expected token guidance in message, got %q", msg)
	}

	msg = FormatUserError(NewAIErrorWithStatus("anthropic", "Chat", 401, "invalid key"))
	if !strings.Contains(msg, "ANTHROPIC_API_KEY") {
		t.Errorf("expected api key guidance in message, got %q", msg)
	}

	msg = FormatUserError(NewWorkflowError("create", "missing Azure DevOps context"))
	if !strings.Contains(msg, "--dry-run") {
		t.Errorf("expected dry-run guidance in message, got %q", msg)
	}
}
