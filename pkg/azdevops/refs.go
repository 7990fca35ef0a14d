package azdevops

import "strings"

// ToRef converts a branch name to the fully-qualified ref form the pull
// request API requires. Already-qualified refs pass through unchanged, and
// remote-tracking prefixes are stripped first, so the function is idempotent.
func ToRef(branch string) string {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return ""
	}
	if strings.HasPrefix(branch, "refs/heads/") {
		return branch
	}
	return "refs/heads/" + normalizeBranch(branch)
}

// normalizeBranch strips remote-tracking decorations from a branch name.
func normalizeBranch(branch string) string {
	for _, prefix := range []string{"refs/remotes/", "remotes/"} {
		if strings.HasPrefix(branch, prefix) {
			rest := strings.TrimPrefix(branch, prefix)
			if idx := strings.Index(rest, "/"); idx >= 0 {
				return rest[idx+1:]
			}
			return rest
		}
	}
	return strings.TrimPrefix(branch, "origin/")
}
