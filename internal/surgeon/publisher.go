package surgeon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bugsurgeon/gh-surgeon/internal/config"
	"github.com/bugsurgeon/gh-surgeon/internal/github"
	"github.com/bugsurgeon/gh-surgeon/internal/history"
	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// Publisher posts analysis results back to GitHub: an issue comment, an
// optional label, and an optional pull request carrying the full report.
type Publisher struct {
	gh     *github.Client
	cfg    *config.Config
	dryRun bool
}

// NewPublisher creates a Publisher. With dryRun set, every publish call logs
// what it would do and touches nothing.
func NewPublisher(gh *github.Client, cfg *config.Config, dryRun bool) *Publisher {
	return &Publisher{gh: gh, cfg: cfg, dryRun: dryRun}
}

// Comment posts the analysis as an issue comment, unless a recent bot
// comment is still within the cooldown window. Returns whether a comment was
// posted.
func (p *Publisher) Comment(ctx context.Context, report *models.BugReport, a *models.Analysis, similar []models.SimilarIncident) (bool, error) {
	skip, err := p.gh.ShouldSkipComment(ctx, report.Org, report.Repo, report.Number, p.cfg.Publish.CommentCooldownHours)
	if err != nil {
		return false, fmt.Errorf("failed to check existing comments: %w", err)
	}
	if skip {
		return false, nil
	}

	body := FormatComment(a, similar)
	if p.dryRun {
		fmt.Printf("[dry-run] would comment on %s#%d (%d chars)\n", report.FullRepo(), report.Number, len(body))
		return false, nil
	}

	if err := p.gh.PostComment(ctx, report.Org, report.Repo, report.Number, body); err != nil {
		return false, fmt.Errorf("failed to post comment: %w", err)
	}

	if label := p.cfg.Publish.AnalyzedLabel; label != "" {
		if err := p.gh.AddLabels(ctx, report.Org, report.Repo, report.Number, []string{label}); err != nil {
			// The comment landed; a label failure is not worth failing over.
			fmt.Printf("warning: could not add label %q: %v\n", label, err)
		}
	}

	return true, nil
}

// OpenAnalysisPR creates a branch off the configured base, commits the full
// analysis report as a markdown file, and opens a pull request. Returns the
// PR URL.
func (p *Publisher) OpenAnalysisPR(ctx context.Context, report *models.BugReport, a *models.Analysis) (*github.PullRequest, error) {
	branch := fmt.Sprintf("bug-surgeon/fix-issue-%d", report.Number)
	path := fmt.Sprintf("bug-analysis-%d.md", report.Number)

	if p.dryRun {
		fmt.Printf("[dry-run] would open PR from %s with %s\n", branch, path)
		return nil, nil
	}

	if err := p.gh.CreateBranch(ctx, report.Org, report.Repo, branch, p.cfg.Publish.BaseBranch); err != nil {
		return nil, fmt.Errorf("failed to create branch %s: %w", branch, err)
	}

	message := fmt.Sprintf("Add bug analysis for issue #%d", report.Number)
	if err := p.gh.CreateFile(ctx, report.Org, report.Repo, branch, path, message, FormatReport(report, a)); err != nil {
		return nil, fmt.Errorf("failed to commit analysis file: %w", err)
	}

	pr, err := p.gh.OpenPullRequest(ctx, report.Org, report.Repo, github.NewPullRequest{
		Title: fmt.Sprintf("Bug analysis for issue #%d", report.Number),
		Body:  formatPRBody(report, a),
		Head:  branch,
		Base:  p.cfg.Publish.BaseBranch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open pull request: %w", err)
	}

	return pr, nil
}

// FormatComment renders the analysis as a GitHub issue comment. The bot
// signature in the header is what the cooldown check looks for.
func FormatComment(a *models.Analysis, similar []models.SimilarIncident) string {
	var b strings.Builder

	b.WriteString("## 🔬 " + github.BotSignature + "\n\n")
	b.WriteString("**Root Cause**\n\n" + a.RootCause + "\n\n")
	b.WriteString("**Explanation**\n\n" + a.Explanation + "\n\n")
	if a.ProposedFix != models.NotFound {
		b.WriteString("**Proposed Fix**\n\n" + a.ProposedFix + "\n\n")
	}
	b.WriteString(fmt.Sprintf("**Confidence:** %s\n", a.Confidence))

	if section := history.CommentSection(similar); section != "" {
		b.WriteString("\n" + section)
	}

	b.WriteString("\n---\n*Automated analysis. Verify before acting on it.*\n")
	return b.String()
}

// FormatReport renders the full analysis document committed to the PR
// branch, including the reasoning trace when one was captured.
func FormatReport(report *models.BugReport, a *models.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Bug Analysis: Issue #%d\n\n", report.Number))
	if report.Title != "" {
		b.WriteString(fmt.Sprintf("**Issue:** %s\n\n", report.Title))
	}
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().UTC().Format(time.RFC3339)))
	b.WriteString("## Root Cause\n\n" + a.RootCause + "\n\n")
	b.WriteString("## Explanation\n\n" + a.Explanation + "\n\n")
	b.WriteString("## Proposed Fix\n\n" + a.ProposedFix + "\n\n")
	b.WriteString("## Confidence\n\n" + a.Confidence + "\n")

	if len(a.ReasoningTrace) > 0 {
		b.WriteString("\n## Reasoning Trace\n\n")
		for _, step := range a.ReasoningTrace {
			b.WriteString("- " + step + "\n")
		}
	}

	return b.String()
}

func formatPRBody(report *models.BugReport, a *models.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Automated bug analysis for #%d.\n\n", report.Number))
	b.WriteString("**Root Cause:** " + truncateLine(a.RootCause, 300) + "\n\n")
	b.WriteString("**Confidence:** " + a.Confidence + "\n\n")
	b.WriteString(fmt.Sprintf("The full report is in `bug-analysis-%d.md` on this branch.\n", report.Number))

	return b.String()
}

func truncateLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
