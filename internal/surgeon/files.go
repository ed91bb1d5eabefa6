package surgeon

import (
	"regexp"
	"strings"
)

// filePatterns match file references the way they typically appear in bug
// reports: quoted traceback frames, and bare paths with a source extension.
var filePatterns = []*regexp.Regexp{
	regexp.MustCompile(`File "([^"]+)"`),
	regexp.MustCompile(`\b([\w][\w./-]*\.(?:go|py|js|jsx|ts|tsx|java|rb|rs|c|cc|cpp|h|hpp|cs|php|swift|kt|scala|sql|sh|yaml|yml|json|toml|cfg|ini))\b`),
}

// ExtractFilePaths scans a bug report for file path mentions. Duplicates are
// dropped, first-mention order is preserved, and a leading "./" is trimmed so
// repository lookups get a clean path.
func ExtractFilePaths(text string) []string {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range filePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			path := strings.TrimPrefix(match[1], "./")
			if path == "" || seen[path] {
				continue
			}
			seen[path] = true
			paths = append(paths, path)
		}
	}

	return paths
}
