package workflow

import (
	"context"
	"fmt"

	"github.com/prflight/prflight/pkg/azdevops"
	pferrors "github.com/prflight/prflight/pkg/errors"
)

// Review runs the review flow: collect the diff, generate the review text,
// and post it as a PR comment with an optional description update. Missing
// service context is not an error; the generated output is still printed.
func (r *Runner) Review(ctx context.Context, opts ReviewOptions) error {
	bundle := r.Diff.Collect(opts.Source, opts.Target)
	if bundle.Empty() {
		fmt.Fprintln(r.Out, "No diff found; skipping.")
		return nil
	}

	result := r.Generate(ctx, ReviewPrompt, UserContent(bundle))
	if result.Skipped {
		return pferrors.NewWorkflowError("review", "review generation failed: "+result.Reason)
	}

	fmt.Fprintf(r.Out, "Generated review content:\n\n%s\n", result.Text)

	svc := r.NewService(r.Cfg.AzDevOps.RepoID)
	comment := CommentPrefix + result.Text

	if opts.DryRun {
		fmt.Fprintln(r.Out, "Dry run enabled; skipping PR comment/update calls.")
		if opts.PRID > 0 {
			fmt.Fprint(r.Out, svc.NewCommentRequest(opts.PRID, comment).Dump())
			if opts.UpdateDescription {
				placeholder := "[existing description]\n\n---\n" + azdevops.DescriptionSentinel + "\n\n[generated]"
				fmt.Fprint(r.Out, svc.NewUpdateDescriptionRequest(opts.PRID, placeholder).Dump())
			}
		} else {
			fmt.Fprintln(r.Out, "No PR ID available; only review content was generated.")
		}
		return nil
	}

	if opts.PRID == 0 || !r.hasContext(r.Cfg.AzDevOps.RepoID) {
		fmt.Fprintln(r.Out, "Missing Azure DevOps context or token; printing output only.")
		return nil
	}

	if err := svc.PostComment(ctx, opts.PRID, comment); err != nil {
		fmt.Fprintf(r.Out, "Failed to post PR comment: %v\n", err)
	} else {
		fmt.Fprintln(r.Out, "Posted PR comment.")
	}

	if opts.UpdateDescription {
		generated := result.Text
		if dres := r.Generate(ctx, DescriptionPrompt, UserContent(bundle)); !dres.Skipped {
			generated = dres.Text
		}
		r.updateDescription(ctx, svc, opts.PRID, generated)
	}
	return nil
}

// updateDescription patches the PR description behind the sentinel guard.
// Failures are reported but never abort the flow.
func (r *Runner) updateDescription(ctx context.Context, svc PRService, prID int, generated string) {
	skipped, err := svc.UpdateDescriptionIfAbsent(ctx, prID, generated)
	switch {
	case err != nil:
		fmt.Fprintf(r.Out, "Failed to update PR description: %v\n", err)
	case skipped:
		fmt.Fprintln(r.Out, "PR description already contains AI section; skipping update.")
	default:
		fmt.Fprintln(r.Out, "Updated PR description.")
	}
}
