// Package analysis extracts structured fields from free-text model
// responses. Extraction is a best-effort heuristic, not a grammar: labels
// are matched case-insensitively at line starts, and anything the parser
// cannot locate is reported as the sentinel value rather than an error.
package analysis

import (
	"regexp"
	"strings"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

var (
	analysisRe = regexp.MustCompile(`(?is)<analysis>(.*?)</analysis>`)
	solutionRe = regexp.MustCompile(`(?is)<solution>(.*?)</solution>`)
	thinkingRe = regexp.MustCompile(`(?is)<thinking>(.*?)</thinking>`)
)

// field names the label scanner assigns to
const (
	fieldRootCause   = "root_cause"
	fieldExplanation = "explanation"
	fieldProposedFix = "proposed_fix"
	fieldConfidence  = "confidence"
)

// labelAliases maps the recognized line-start markers (lowercased, without
// the trailing colon) to their field.
var labelAliases = map[string]string{
	"root_cause":   fieldRootCause,
	"root cause":   fieldRootCause,
	"explanation":  fieldExplanation,
	"proposed_fix": fieldProposedFix,
	"proposed fix": fieldProposedFix,
	"confidence":   fieldConfidence,
}

// Parse extracts an Analysis from raw response text. It never fails:
// unparseable text yields an all-sentinel result with the raw text preserved.
func Parse(raw string) *models.Analysis {
	a := models.NewAnalysis()
	a.Raw = raw

	// Reasoning traces come from anywhere in the response
	for _, m := range thinkingRe.FindAllStringSubmatch(raw, -1) {
		if trace := strings.TrimSpace(m[1]); trace != "" {
			a.ReasoningTrace = append(a.ReasoningTrace, trace)
		}
	}

	// Prefer the <analysis> block; fall back to scanning the whole text
	scanRegion := raw
	if m := analysisRe.FindStringSubmatch(raw); m != nil {
		scanRegion = m[1]
	}
	fields := scanLabels(scanRegion)

	if v, ok := fields[fieldRootCause]; ok {
		a.RootCause = v
	}
	if v, ok := fields[fieldExplanation]; ok {
		a.Explanation = v
	}
	if v, ok := fields[fieldProposedFix]; ok {
		a.ProposedFix = v
	}
	if v, ok := fields[fieldConfidence]; ok {
		a.Confidence = v
	}

	// A <solution> block stands in for the fix when no label supplied one
	if a.ProposedFix == models.NotFound {
		if m := solutionRe.FindStringSubmatch(raw); m != nil {
			if fix := strings.TrimSpace(m[1]); fix != "" {
				a.ProposedFix = fix
			}
		}
	}

	return a
}

// scanLabels walks the text line by line. A line whose (trimmed) prefix up to
// the first colon matches a recognized label starts a field; the field value
// runs from the remainder of that line until the next recognized label or end
// of text, trimmed. The first occurrence of each label wins.
func scanLabels(text string) map[string]string {
	fields := make(map[string]string)

	var current string
	var buf []string

	flush := func() {
		if current == "" {
			return
		}
		if _, seen := fields[current]; !seen {
			fields[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
		current = ""
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if field, rest, ok := matchLabel(line); ok {
			flush()
			current = field
			buf = []string{rest}
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return fields
}

// matchLabel reports whether a line begins with a recognized label marker,
// returning the field name and the remainder of the line.
func matchLabel(line string) (field, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)

	idx := strings.Index(trimmed, ":")
	if idx <= 0 {
		return "", "", false
	}

	label := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
	field, ok = labelAliases[label]
	if !ok {
		return "", "", false
	}

	return field, strings.TrimSpace(trimmed[idx+1:]), true
}
