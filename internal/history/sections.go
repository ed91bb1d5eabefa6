package history

import (
	"fmt"
	"strings"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// PromptSection formats similar incidents for inclusion in the analysis
// prompt. Empty input yields an empty string.
func PromptSection(similar []models.SimilarIncident) string {
	if len(similar) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nSimilar past incidents (for context, do not assume the same cause):\n")
	for _, s := range similar {
		sb.WriteString(fmt.Sprintf("- [%s#%d] %s (%.0f%% similar, %s)",
			s.Incident.FullRepo(), s.Incident.Number,
			s.Incident.Title, s.Score*100, s.Incident.State))
		if s.Incident.RootCause != "" && s.Incident.RootCause != models.NotFound {
			sb.WriteString(fmt.Sprintf(" | prior root cause: %s", s.Incident.RootCause))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// CommentSection formats similar incidents as a markdown table for issue
// comments.
func CommentSection(similar []models.SimilarIncident) string {
	if len(similar) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n**Similar past incidents:**\n\n")
	sb.WriteString("| Issue | Similarity | Status |\n")
	sb.WriteString("|-------|------------|--------|\n")

	for _, s := range similar {
		status := "🟢 Open"
		if s.Incident.State == "closed" {
			status = "🔴 Closed"
		}

		title := truncateString(s.Incident.Title, 50)
		link := fmt.Sprintf("[#%d - %s](%s)", s.Incident.Number, title, s.Incident.URL)
		sb.WriteString(fmt.Sprintf("| %s | %.0f%% | %s |\n", link, s.Score*100, status))
	}

	return sb.String()
}

// truncateString truncates a string to maxLen with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
