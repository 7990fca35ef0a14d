package workflow

import (
	"fmt"
	"strings"

	"github.com/prflight/prflight/pkg/azdevops"
	"github.com/prflight/prflight/pkg/git"
)

// ReviewPrompt is the system prompt for review comment generation.
const ReviewPrompt = "You are a senior embedded software reviewer.\n" +
	"Review the diff and produce:\n" +
	"1) A concise code review with risks/bugs, regressions, and missing tests.\n" +
	"2) Output in Markdown format with sections: Findings, Risks, Test Gaps, Suggestions.\n" +
	"Be factual and reference files when possible. If unsure, say so."

// DescriptionPrompt is the system prompt for PR description generation.
const DescriptionPrompt = "You are a senior embedded software engineer writing pull request descriptions.\n" +
	"Generate a concise, high-signal PR description in Markdown with sections:\n" +
	"- Summary\n" +
	"- Changes\n" +
	"- Tests\n" +
	"Be specific, actionable, and avoid filler."

// Fallback descriptions used when no diff exists or generation fails.
const (
	FallbackNoDiffDescription = "Summary\n- No diff detected between selected branches."
	FallbackFailedDescription = "Summary\n- AI description generation failed."
)

// CommentPrefix heads every review comment posted to a pull request.
const CommentPrefix = "## AI Code Review\n\n"

// UserContent renders the diff bundle as the user message for both prompts.
func UserContent(bundle git.Bundle) string {
	return fmt.Sprintf("Git range: %s\n\nFiles changed:\n%s\n\nDiff:\n%s",
		bundle.RangeSpec, bundle.FilesBlock(), bundle.Diff)
}

// DefaultTitle builds the title used when none is given.
func DefaultTitle(source, target string) string {
	src := strings.TrimPrefix(azdevops.ToRef(source), "refs/heads/")
	tgt := strings.TrimPrefix(azdevops.ToRef(target), "refs/heads/")
	return src + " into " + tgt
}
