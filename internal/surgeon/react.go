package surgeon

import (
	"fmt"
	"strconv"
	"strings"
)

// ToolRequest is a file lookup the model asked for mid-analysis.
type ToolRequest struct {
	Tool      string
	FilePath  string
	StartLine int
	EndLine   int
}

// ParseToolRequests extracts TOOL_REQUEST blocks from a model response. Each
// block is a TOOL_REQUEST: line followed by FILE: and optional START_LINE: /
// END_LINE: lines within the next few lines. Malformed blocks are skipped.
func ParseToolRequests(text string) []ToolRequest {
	lines := strings.Split(text, "\n")
	var requests []ToolRequest

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "TOOL_REQUEST:") {
			continue
		}

		req := ToolRequest{
			Tool: strings.TrimSpace(strings.TrimPrefix(trimmed, "TOOL_REQUEST:")),
		}
		for j := i + 1; j < len(lines) && j <= i+4; j++ {
			field := strings.TrimSpace(lines[j])
			switch {
			case strings.HasPrefix(field, "FILE:"):
				req.FilePath = strings.TrimSpace(strings.TrimPrefix(field, "FILE:"))
			case strings.HasPrefix(field, "START_LINE:"):
				req.StartLine = parseLineNumber(field, "START_LINE:")
			case strings.HasPrefix(field, "END_LINE:"):
				req.EndLine = parseLineNumber(field, "END_LINE:")
			}
		}

		if req.FilePath != "" {
			requests = append(requests, req)
		}
	}

	return requests
}

func parseLineNumber(field, prefix string) int {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(field, prefix)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// sliceLines narrows content to the requested 1-based line range. A zero
// start or end means "from the beginning" / "to the end". Out-of-range
// requests clamp rather than fail.
func sliceLines(content string, start, end int) string {
	if start <= 0 && end <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	if start <= 0 {
		start = 1
	}
	if end <= 0 || end > len(lines) {
		end = len(lines)
	}
	if start > len(lines) || start > end {
		return ""
	}

	return strings.Join(lines[start-1:end], "\n")
}

// clipContent truncates file content to maxBytes, noting the cut so the
// model knows it is not seeing the whole file.
func clipContent(content string, maxBytes int) string {
	if maxBytes <= 0 || len(content) <= maxBytes {
		return content
	}
	return content[:maxBytes] + fmt.Sprintf("\n... (truncated, %d bytes total)", len(content))
}
