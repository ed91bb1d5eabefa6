package format

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

func TestWrapText(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	wrapped := wrapText(text, 20, "  ")

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 24 {
			t.Errorf("line too long: %q", line)
		}
		if line != "" && !strings.HasPrefix(line, "  ") {
			t.Errorf("line missing indent: %q", line)
		}
	}
}

func TestConfidenceColor(t *testing.T) {
	tests := []struct {
		confidence string
		want       *color.Color
	}{
		{"HIGH", color.New(color.FgGreen, color.Bold)},
		{"medium", color.New(color.FgYellow, color.Bold)},
		{"LOW", color.New(color.FgRed, color.Bold)},
		{"not found", color.New(color.FgWhite)},
	}

	for _, tt := range tests {
		got := confidenceColor(tt.confidence)
		if !got.Equals(tt.want) {
			t.Errorf("confidenceColor(%q) mismatch", tt.confidence)
		}
	}
}

func TestDisplayAnalysis_UnknownFormat(t *testing.T) {
	a := &models.Analysis{RootCause: "x", Explanation: "y", ProposedFix: "z", Confidence: "LOW"}
	if err := DisplayAnalysis(a, nil, "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
