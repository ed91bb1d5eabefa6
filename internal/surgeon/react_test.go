package surgeon

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseToolRequests(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ToolRequest
	}{
		{
			name: "full request",
			text: `I need to see the handler first.

TOOL_REQUEST: read_file
FILE: internal/server/handler.go
START_LINE: 10
END_LINE: 40`,
			want: []ToolRequest{
				{Tool: "read_file", FilePath: "internal/server/handler.go", StartLine: 10, EndLine: 40},
			},
		},
		{
			name: "no line range",
			text: "TOOL_REQUEST: read_file\nFILE: main.py",
			want: []ToolRequest{{Tool: "read_file", FilePath: "main.py"}},
		},
		{
			name: "multiple requests",
			text: `TOOL_REQUEST: read_file
FILE: a.go

TOOL_REQUEST: read_file
FILE: b.go`,
			want: []ToolRequest{
				{Tool: "read_file", FilePath: "a.go"},
				{Tool: "read_file", FilePath: "b.go"},
			},
		},
		{
			name: "missing FILE skipped",
			text: "TOOL_REQUEST: read_file\nSTART_LINE: 5",
			want: nil,
		},
		{
			name: "bad line numbers default to zero",
			text: "TOOL_REQUEST: read_file\nFILE: x.go\nSTART_LINE: abc\nEND_LINE: -3",
			want: []ToolRequest{{Tool: "read_file", FilePath: "x.go"}},
		},
		{
			name: "plain analysis has no requests",
			text: "<analysis>\nROOT_CAUSE: nil map write\n</analysis>",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseToolRequests(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseToolRequests() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSliceLines(t *testing.T) {
	content := "one\ntwo\nthree\nfour\nfive"

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"no range means whole file", 0, 0, content},
		{"middle range", 2, 4, "two\nthree\nfour"},
		{"open start", 0, 2, "one\ntwo"},
		{"open end", 4, 0, "four\nfive"},
		{"end clamped", 4, 99, "four\nfive"},
		{"start beyond file", 10, 20, ""},
		{"inverted range", 4, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sliceLines(content, tt.start, tt.end); got != tt.want {
				t.Errorf("sliceLines(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestClipContent(t *testing.T) {
	if got := clipContent("short", 100); got != "short" {
		t.Errorf("clipContent should leave short content alone, got %q", got)
	}

	long := "aaaaaaaaaa"
	got := clipContent(long, 4)
	if !strings.HasPrefix(got, "aaaa\n... (truncated") {
		t.Errorf("clipContent should cut and note the truncation, got %q", got)
	}

	if got := clipContent(long, 0); got != long {
		t.Errorf("clipContent with zero limit should be a no-op, got %q", got)
	}
}
