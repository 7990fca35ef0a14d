// Package repoid infers an Azure DevOps repository identifier from a git
// remote URL.
//
// Azure DevOps repositories are reachable through three URL dialects:
//
//	https://dev.azure.com/org/project/_git/repo        (HTTPS clone)
//	git@ssh.dev.azure.com:v3/org/project/repo          (SSH v3)
//	anything else with the repo as the last path segment
//
// Extraction is a best-effort heuristic over these dialects and never fails;
// the worst case is an empty identifier, which callers must then require
// explicitly.
package repoid

import (
	"net/url"
	"regexp"
	"strings"
)

// sshV3Pattern matches the Azure DevOps SSH v3 URL shape and captures the
// repository segment.
var sshV3Pattern = regexp.MustCompile(`ssh\.dev\.azure\.com[:/]+v3/[^/]+/[^/]+/([^/]+)$`)

// rule pairs a URL-shape predicate with its extractor. Rules are evaluated
// in order; the first match wins.
type rule struct {
	name    string
	match   func(remote string) bool
	extract func(remote string) string
}

var rules = []rule{
	{
		name:    "https clone (_git marker)",
		match:   func(remote string) bool { return strings.Contains(remote, "/_git/") },
		extract: extractAfterGitMarker,
	},
	{
		name:    "ssh v3",
		match:   sshV3Pattern.MatchString,
		extract: extractSSHV3,
	},
	{
		name:    "generic path",
		match:   func(string) bool { return true },
		extract: extractLastSegment,
	},
}

// FromRemoteURL derives the repository identifier from a remote URL.
// Returns empty for an empty input.
func FromRemoteURL(remote string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return ""
	}

	for _, r := range rules {
		if r.match(remote) {
			return r.extract(remote)
		}
	}
	return ""
}

// extractAfterGitMarker takes everything after the last "/_git/" marker.
func extractAfterGitMarker(remote string) string {
	idx := strings.LastIndex(remote, "/_git/")
	repo := strings.Trim(remote[idx+len("/_git/"):], "/")
	return unescape(repo)
}

// extractSSHV3 takes the final path segment of a v3 SSH URL.
func extractSSHV3(remote string) string {
	m := sshV3Pattern.FindStringSubmatch(remote)
	return unescape(strings.TrimSuffix(m[1], ".git"))
}

// extractLastSegment treats the URL as a generic path: last segment after
// separator normalization, with a trailing .git stripped. An scp-like
// "user@host:repo" form keeps only the portion after the last colon.
func extractLastSegment(remote string) string {
	path := strings.TrimRight(strings.ReplaceAll(remote, "\\", "/"), "/")
	repo := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		repo = path[idx+1:]
	}
	if strings.Contains(repo, ":") && strings.Contains(path, "@") && !strings.Contains(repo, "/") {
		repo = repo[strings.LastIndex(repo, ":")+1:]
	}
	return unescape(strings.TrimSuffix(repo, ".git"))
}

// unescape percent-decodes a segment, passing it through unchanged when the
// escaping is malformed.
func unescape(segment string) string {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}
