package workflow

import (
	"context"
	"fmt"
	"strings"

	pferrors "github.com/prflight/prflight/pkg/errors"
	"github.com/prflight/prflight/pkg/repoid"
)

// Create runs the PR creation flow: optional push, diff collection,
// description generation, and either a dry-run preview or the real API call.
func (r *Runner) Create(ctx context.Context, opts CreateOptions) error {
	repoID := r.Cfg.AzDevOps.RepoID
	if repoID == "" {
		if inferred := repoid.FromRemoteURL(r.Diff.RemoteURL()); inferred != "" {
			repoID = inferred
			fmt.Fprintf(r.Out, "Inferred repo-id from git origin: %s\n", repoID)
		}
	}

	if opts.Push {
		fmt.Fprintf(r.Out, "Pushing %s to origin...\n", opts.Source)
		if err := r.Diff.Push(opts.Source); err != nil {
			return err
		}
	}

	bundle := r.Diff.Collect(opts.Source, opts.Target)

	var description string
	if bundle.Empty() {
		fmt.Fprintln(r.Out, "No diff found. Creating PR with fallback description.")
		description = FallbackNoDiffDescription
	} else {
		result := r.Generate(ctx, DescriptionPrompt, UserContent(bundle))
		if result.Skipped {
			r.logDebug("description generation skipped", "reason", result.Reason)
			description = FallbackFailedDescription
		} else {
			description = result.Text
		}
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle(opts.Source, opts.Target)
	}

	svc := r.NewService(repoID)

	if opts.DryRun {
		fmt.Fprintln(r.Out, "Dry run enabled; skipping PR creation.")
		fmt.Fprint(r.Out, svc.NewCreatePRRequest(opts.Source, opts.Target, title, description).Dump())
		fmt.Fprintf(r.Out, "Generated PR description:\n\n%s\n", description)
		return nil
	}

	if !r.hasContext(repoID) {
		fmt.Fprintf(r.Out, "Generated PR description:\n\n%s\n", description)
		return pferrors.NewWorkflowError("create",
			"missing Azure DevOps context; set --org-url, --project, --repo-id and --token or the AZDO_* environment variables")
	}

	pr, err := svc.CreatePR(ctx, opts.Source, opts.Target, title, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.Out, "Created PR #%d: %s\n", pr.ID, title)
	if pr.URL != "" {
		fmt.Fprintf(r.Out, "PR API URL: %s\n", pr.URL)
	}
	return nil
}
