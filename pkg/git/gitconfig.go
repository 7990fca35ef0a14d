package git

import (
	"bufio"
	"os"
	"strings"
)

// originURLFromConfigFile extracts the origin remote URL from a git config
// file without invoking git. Only the minimal INI subset git writes is
// understood: section headers and key = value lines.
func originURLFromConfigFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	inOrigin := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "[") {
			inOrigin = line == `[remote "origin"]`
			continue
		}

		if !inOrigin {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if found && strings.TrimSpace(key) == "url" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}
