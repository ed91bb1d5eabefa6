package github

import (
	"encoding/json"
	"testing"
)

func TestIsPullRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "plain issue",
			body: `{"number": 1, "title": "bug", "html_url": "https://github.com/acme/api/issues/1"}`,
			want: false,
		},
		{
			name: "pull_request marker",
			body: `{"number": 2, "title": "fix", "html_url": "https://github.com/acme/api/issues/2",
				"pull_request": {"url": "https://api.github.com/repos/acme/api/pulls/2"}}`,
			want: true,
		},
		{
			name: "pull URL",
			body: `{"number": 3, "title": "fix", "html_url": "https://github.com/acme/api/pull/3"}`,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var issue Issue
			if err := json.Unmarshal([]byte(tt.body), &issue); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := issue.isPullRequest(); got != tt.want {
				t.Errorf("isPullRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIssueToIncident(t *testing.T) {
	issue := Issue{
		Number:  7,
		Title:   "login fails",
		Body:    "stacktrace here",
		State:   "open",
		HTMLURL: "https://github.com/acme/api/issues/7",
	}

	inc := issue.ToIncident("acme", "api")
	if inc.FullRepo() != "acme/api" || inc.Number != 7 {
		t.Errorf("incident identity wrong: %s#%d", inc.FullRepo(), inc.Number)
	}
	if inc.Title != "login fails" || inc.State != "open" {
		t.Errorf("incident fields wrong: %+v", inc)
	}
}
