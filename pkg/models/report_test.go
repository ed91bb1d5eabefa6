package models

import (
	"testing"
)

func TestIncidentUUID(t *testing.T) {
	tests := []struct {
		org    string
		repo   string
		number int
	}{
		{"myorg", "myrepo", 123},
		{"other", "repo", 456},
		{"test", "test", 1},
	}

	for _, tt := range tests {
		t.Run(tt.org+"/"+tt.repo, func(t *testing.T) {
			// UUID should be deterministic
			uuid1 := IncidentUUID(tt.org, tt.repo, tt.number)
			uuid2 := IncidentUUID(tt.org, tt.repo, tt.number)

			if uuid1 != uuid2 {
				t.Errorf("IncidentUUID not deterministic: %v != %v", uuid1, uuid2)
			}

			// UUID should be valid format
			if len(uuid1) != 36 {
				t.Errorf("IncidentUUID invalid length: %d", len(uuid1))
			}
		})
	}
}

func TestIncident_BodyHash(t *testing.T) {
	inc := &Incident{Body: "stack trace and context"}

	hash1 := inc.BodyHash()
	hash2 := inc.BodyHash()

	if hash1 != hash2 {
		t.Errorf("BodyHash not deterministic")
	}

	if len(hash1) != 64 {
		t.Errorf("BodyHash invalid length: %d", len(hash1))
	}

	inc.Body = "different body"
	if hash1 == inc.BodyHash() {
		t.Errorf("Different body produced same hash")
	}
}

func TestBugReport_FromIssue(t *testing.T) {
	local := &BugReport{Text: "something broke"}
	if local.FromIssue() {
		t.Errorf("FromIssue() = true for local report")
	}

	bound := &BugReport{Text: "something broke", Org: "myorg", Repo: "myrepo", Number: 7}
	if !bound.FromIssue() {
		t.Errorf("FromIssue() = false for issue-bound report")
	}
	if bound.FullRepo() != "myorg/myrepo" {
		t.Errorf("FullRepo() = %v, want myorg/myrepo", bound.FullRepo())
	}
}

func TestAnalysis_Structured(t *testing.T) {
	a := NewAnalysis()
	if a.Structured() {
		t.Errorf("Structured() = true for all-sentinel analysis")
	}

	a.RootCause = "missing null check"
	if !a.Structured() {
		t.Errorf("Structured() = false after setting root cause")
	}
}
