package surgeon

import (
	"strings"
	"testing"

	"github.com/bugsurgeon/gh-surgeon/internal/github"
	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

func sampleAnalysis() *models.Analysis {
	return &models.Analysis{
		RootCause:   "nil user dereference",
		Explanation: "the user lookup can return nil and the handler never checks",
		ProposedFix: "guard the lookup result before accessing fields",
		Confidence:  "HIGH",
	}
}

func TestFormatComment(t *testing.T) {
	body := FormatComment(sampleAnalysis(), nil)

	if !strings.Contains(body, github.BotSignature) {
		t.Error("comment must carry the bot signature for cooldown detection")
	}
	for _, want := range []string{"nil user dereference", "guard the lookup result", "**Confidence:** HIGH"} {
		if !strings.Contains(body, want) {
			t.Errorf("comment missing %q:\n%s", want, body)
		}
	}
}

func TestFormatComment_OmitsMissingFix(t *testing.T) {
	a := sampleAnalysis()
	a.ProposedFix = models.NotFound

	body := FormatComment(a, nil)
	if strings.Contains(body, "Proposed Fix") {
		t.Errorf("comment should omit the fix section when none was found:\n%s", body)
	}
}

func TestFormatComment_SimilarIncidents(t *testing.T) {
	similar := []models.SimilarIncident{{
		Incident: models.Incident{Org: "acme", Repo: "api", Number: 7, Title: "login timeout", State: "closed", URL: "https://example.com/7"},
		Score:    0.88,
	}}

	body := FormatComment(sampleAnalysis(), similar)
	if !strings.Contains(body, "login timeout") || !strings.Contains(body, "88%") {
		t.Errorf("comment missing similar incident table:\n%s", body)
	}
}

func TestFormatReport(t *testing.T) {
	report := &models.BugReport{Title: "API crashes on login", Number: 42}
	a := sampleAnalysis()
	a.ReasoningTrace = []string{"checked handler flow", "confirmed nil path"}

	doc := FormatReport(report, a)

	for _, want := range []string{
		"# Bug Analysis: Issue #42",
		"API crashes on login",
		"## Root Cause",
		"## Reasoning Trace",
		"- checked handler flow",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q:\n%s", want, doc)
		}
	}
}

func TestFormatPRBody_TruncatesLongRootCause(t *testing.T) {
	a := sampleAnalysis()
	a.RootCause = strings.Repeat("very long cause ", 50)

	body := formatPRBody(&models.BugReport{Number: 3}, a)
	if !strings.Contains(body, "...") {
		t.Errorf("long root cause should be truncated:\n%s", body)
	}
	if !strings.Contains(body, "bug-analysis-3.md") {
		t.Errorf("PR body should point at the analysis file:\n%s", body)
	}
}
