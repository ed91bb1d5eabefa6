package models

// SimilarIncident is a past incident found via vector search
type SimilarIncident struct {
	Incident Incident `json:"incident"`
	Score    float64  `json:"score"` // Similarity score (0-1)
}

// IndexStats contains statistics from an indexing operation
type IndexStats struct {
	TotalIssues int `json:"total_issues"`
	Indexed     int `json:"indexed"`
	Skipped     int `json:"skipped"`
	Errors      int `json:"errors"`
	DurationMs  int `json:"duration_ms"`
}

// ProcessResult contains the result of processing a single issue event
type ProcessResult struct {
	IssueNumber   int               `json:"issue_number"`
	Analysis      *Analysis         `json:"analysis,omitempty"`
	SimilarFound  []SimilarIncident `json:"similar_found,omitempty"`
	CommentPosted bool              `json:"comment_posted"`
	PullRequest   string            `json:"pull_request,omitempty"`
	Skipped       bool              `json:"skipped"`
	SkipReason    string            `json:"skip_reason,omitempty"`
	Error         string            `json:"error,omitempty"`
}
