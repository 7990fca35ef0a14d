// Package workflow orchestrates the create and review flows: collect a diff,
// generate text with the configured AI provider, and talk to Azure DevOps.
//
// The flows degrade deliberately. Missing credentials or a provider outage
// produce fallback text, and a missing service context prints the generated
// output instead of failing, so the tool stays useful in partial setups.
package workflow

import (
	"context"
	"io"
	"log/slog"

	"github.com/prflight/prflight/pkg/ai"
	"github.com/prflight/prflight/pkg/azdevops"
	"github.com/prflight/prflight/pkg/config"
	"github.com/prflight/prflight/pkg/git"
)

// DiffSource provides local git queries.
type DiffSource interface {
	Collect(source, target string) git.Bundle
	Push(branch string) error
	RemoteURL() string
}

// Generator runs one completion against the configured provider.
type Generator func(ctx context.Context, systemPrompt, userContent string) ai.Result

// PRService is the Azure DevOps surface the flows use. The request builders
// are part of the interface so dry-run previews show the real payloads.
type PRService interface {
	CreatePR(ctx context.Context, source, target, title, description string) (*azdevops.PRInfo, error)
	PostComment(ctx context.Context, prID int, content string) error
	UpdateDescriptionIfAbsent(ctx context.Context, prID int, generated string) (bool, error)
	NewCreatePRRequest(source, target, title, description string) azdevops.Request
	NewCommentRequest(prID int, content string) azdevops.Request
	NewUpdateDescriptionRequest(prID int, description string) azdevops.Request
}

// Runner wires the flow dependencies. NewService takes the repository id
// explicitly because the create flow may infer it after the Runner is built.
type Runner struct {
	Cfg        *config.Config
	Diff       DiffSource
	Generate   Generator
	NewService func(repoID string) PRService
	Out        io.Writer
	Logger     *slog.Logger
}

// CreateOptions are the arguments of the create flow.
type CreateOptions struct {
	Source string
	Target string
	Title  string
	Push   bool
	DryRun bool
}

// ReviewOptions are the arguments of the review flow.
type ReviewOptions struct {
	Source            string
	Target            string
	PRID              int
	UpdateDescription bool
	DryRun            bool
}

// hasContext reports whether a real mutating call can be made. The repository
// id is taken separately because the create flow may have inferred it.
func (r *Runner) hasContext(repoID string) bool {
	az := r.Cfg.AzDevOps
	az.RepoID = repoID
	return az.HasServiceContext()
}

func (r *Runner) logDebug(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, args...)
	}
}
