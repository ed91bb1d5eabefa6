package prompt

import (
	"strings"
	"testing"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

func TestBuild_ReportVerbatim(t *testing.T) {
	tests := []struct {
		name   string
		report string
	}{
		{"plain text", "the login endpoint returns 500"},
		{"traceback", "NoneType has no attribute 'id' in auth.py line 42"},
		{"multiline", "first line\nsecond line\n\nthird"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.report, nil)
			if !strings.Contains(p, tt.report) {
				t.Errorf("prompt does not contain report text verbatim:\n%s", p)
			}
		})
	}
}

func TestBuild_FilesInOrder(t *testing.T) {
	files := []models.FileContext{
		{Path: "pkg/auth/session.go", Content: "package auth"},
		{Path: "pkg/auth/user.go", Content: "type User struct{}"},
		{Path: "cmd/main.go", Content: "func main() {}"},
	}

	p := Build("sessions drop randomly", files)

	lastIdx := -1
	for _, f := range files {
		idx := strings.Index(p, f.Path)
		if idx == -1 {
			t.Fatalf("prompt missing file path %s", f.Path)
		}
		if idx < lastIdx {
			t.Errorf("file %s appears out of supplied order", f.Path)
		}
		lastIdx = idx

		if !strings.Contains(p, f.Content) {
			t.Errorf("prompt missing content for %s", f.Path)
		}
	}
}

func TestBuild_ContainsFormatTrailer(t *testing.T) {
	p := Build("anything", nil)
	if !strings.Contains(p, "ROOT_CAUSE:") || !strings.Contains(p, "<analysis>") {
		t.Errorf("prompt missing output format trailer")
	}
}

func TestSystem_RolePreamble(t *testing.T) {
	s := System()
	if !strings.Contains(s, "Senior Debugging Specialist") {
		t.Errorf("system prompt missing role preamble")
	}
	if !strings.Contains(s, "TOOL_REQUEST: read_file") {
		t.Errorf("system prompt missing tool usage instructions")
	}
}

func TestBuild_EndToEndReportEmbedding(t *testing.T) {
	report := "NoneType has no attribute 'id' in auth.py line 42"
	p := Build(report, nil)

	if !strings.Contains(p, report) {
		t.Errorf("prompt missing exact report string")
	}
	// Role preamble lives in the system prompt, not the user prompt
	if !strings.Contains(System(), "Senior Debugging Specialist") {
		t.Errorf("missing fixed role preamble")
	}
}
