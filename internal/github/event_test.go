package github

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEventFile(t *testing.T) {
	tmpDir := t.TempDir()
	eventPath := filepath.Join(tmpDir, "event.json")

	content := `{
  "action": "opened",
  "issue": {
    "number": 42,
    "title": "Login fails with NoneType error",
    "body": "Traceback in auth.py line 42",
    "state": "open",
    "html_url": "https://github.com/testorg/testrepo/issues/42"
  },
  "repository": {
    "full_name": "testorg/testrepo",
    "owner": {"login": "testorg"},
    "name": "testrepo"
  }
}`

	if err := os.WriteFile(eventPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write event file: %v", err)
	}

	event, err := ParseEventFile(eventPath)
	if err != nil {
		t.Fatalf("ParseEventFile() error = %v", err)
	}

	if !event.IsIssueEvent() || !event.IsOpenedEvent() {
		t.Errorf("event not recognized as opened issue event")
	}

	report := event.ToReport()
	if report == nil {
		t.Fatal("ToReport() = nil")
	}
	if report.Org != "testorg" || report.Repo != "testrepo" || report.Number != 42 {
		t.Errorf("report identity = %s/%s#%d", report.Org, report.Repo, report.Number)
	}
	if !strings.Contains(report.Text, "Traceback in auth.py line 42") {
		t.Errorf("report text missing issue body: %q", report.Text)
	}
}

func TestParseEventFile_NonIssueEvent(t *testing.T) {
	tmpDir := t.TempDir()
	eventPath := filepath.Join(tmpDir, "event.json")

	if err := os.WriteFile(eventPath, []byte(`{"action": "created"}`), 0644); err != nil {
		t.Fatalf("Failed to write event file: %v", err)
	}

	event, err := ParseEventFile(eventPath)
	if err != nil {
		t.Fatalf("ParseEventFile() error = %v", err)
	}

	if event.IsIssueEvent() {
		t.Errorf("IsIssueEvent() = true for non-issue event")
	}
	if event.ToReport() != nil {
		t.Errorf("ToReport() != nil for non-issue event")
	}
}

func TestParseRepo(t *testing.T) {
	org, repo, err := ParseRepo("myorg/myrepo")
	if err != nil {
		t.Fatalf("ParseRepo() error = %v", err)
	}
	if org != "myorg" || repo != "myrepo" {
		t.Errorf("ParseRepo() = %s, %s", org, repo)
	}

	if _, _, err := ParseRepo("not-a-repo"); err == nil {
		t.Errorf("ParseRepo() accepted invalid format")
	}
}
