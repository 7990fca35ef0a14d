// Package git shells out to the git CLI for the read-only queries prflight
// needs: changed files and unified diffs over a three-dot range, the origin
// remote URL, and a push helper for the create flow.
package git

import (
	"log/slog"
	"os/exec"
	"strings"

	pferrors "github.com/prflight/prflight/pkg/errors"
)

// Bounds for the diff bundle handed to the AI provider. Larger diffs are cut
// off with an explicit marker so truncation is always visible in the output.
const (
	MaxDiffChars = 120000
	MaxFiles     = 100

	diffTruncatedMarker  = "\n\n[diff truncated]"
	filesTruncatedMarker = "[files list truncated]"
)

// Bundle is the bounded (file list, diff text, range) tuple passed from
// collection to generation.
type Bundle struct {
	Files     []string // changed file paths in git output order, capped at MaxFiles
	Diff      string   // unified diff text, capped at MaxDiffChars
	RangeSpec string   // "target...source"
}

// Empty reports whether the range produced no diff text.
func (b Bundle) Empty() bool {
	return strings.TrimSpace(b.Diff) == ""
}

// FilesBlock renders the file list as one path per line.
func (b Bundle) FilesBlock() string {
	return strings.Join(b.Files, "\n")
}

// runner executes a git command and returns its combined trimmed output.
type runner func(args ...string) (string, error)

// Collector produces diff bundles for a branch range.
type Collector struct {
	run    runner
	logger *slog.Logger
}

// NewCollector creates a Collector backed by the git CLI.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{run: runGit, logger: logger}
}

// Collect builds a bounded diff bundle for the symmetric range
// "target...source". It never fails: when a range cannot be computed
// (unknown ref, no repository) the affected field degenerates to empty so
// the caller can report "no diff" as a normal outcome.
func (c *Collector) Collect(source, target string) Bundle {
	rangeSpec := target + "..." + source

	names, err := c.run("diff", "--name-only", rangeSpec)
	if err != nil {
		c.logDebug("git diff --name-only failed", "range", rangeSpec, "error", err)
		names = ""
	}

	diff, err := c.run("diff", rangeSpec)
	if err != nil {
		c.logDebug("git diff failed", "range", rangeSpec, "error", err)
		diff = ""
	}

	return Bundle{
		Files:     boundFiles(names),
		Diff:      boundDiff(diff),
		RangeSpec: rangeSpec,
	}
}

// Push pushes a branch to origin with upstream tracking, for create --push.
func (c *Collector) Push(branch string) error {
	out, err := c.run("push", "-u", "origin", branch)
	if err != nil {
		return pferrors.NewWorkflowErrorWithCause("push", strings.TrimSpace(out), err)
	}
	return nil
}

// RemoteURL returns the origin remote URL, querying live git config first and
// falling back to parsing .git/config directly when git is unavailable.
// Returns empty when no origin remote is configured.
func (c *Collector) RemoteURL() string {
	if url, err := c.run("config", "--get", "remote.origin.url"); err == nil && url != "" {
		return url
	}
	return originURLFromConfigFile(".git/config")
}

func (c *Collector) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// boundDiff caps diff text at MaxDiffChars, appending the truncation marker.
func boundDiff(diff string) string {
	if len(diff) > MaxDiffChars {
		return diff[:MaxDiffChars] + diffTruncatedMarker
	}
	return diff
}

// boundFiles splits the name-only output and caps it at MaxFiles entries,
// appending the truncation marker line when entries were dropped.
func boundFiles(names string) []string {
	if names == "" {
		return nil
	}
	lines := strings.Split(names, "\n")
	if len(lines) > MaxFiles {
		files := make([]string, 0, MaxFiles+1)
		files = append(files, lines[:MaxFiles]...)
		return append(files, filesTruncatedMarker)
	}
	return lines
}

// runGit executes git with stderr folded into the output, matching how the
// CLI reports failures.
func runGit(args ...string) (string, error) {
	out, err := exec.Command("git", args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
