package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// result is the machine-readable shape for json/yaml output.
type result struct {
	RootCause      string                   `json:"root_cause" yaml:"root_cause"`
	Explanation    string                   `json:"explanation" yaml:"explanation"`
	ProposedFix    string                   `json:"proposed_fix" yaml:"proposed_fix"`
	Confidence     string                   `json:"confidence" yaml:"confidence"`
	ReasoningTrace []string                 `json:"reasoning_trace,omitempty" yaml:"reasoning_trace,omitempty"`
	Similar        []models.SimilarIncident `json:"similar_incidents,omitempty" yaml:"similar_incidents,omitempty"`
}

// DisplayAnalysis formats and prints an analysis in the requested output
// format ("human", "json" or "yaml").
func DisplayAnalysis(a *models.Analysis, similar []models.SimilarIncident, format string) error {
	res := result{
		RootCause:      a.RootCause,
		Explanation:    a.Explanation,
		ProposedFix:    a.ProposedFix,
		Confidence:     a.Confidence,
		ReasoningTrace: a.ReasoningTrace,
		Similar:        similar,
	}

	switch format {
	case "json":
		return displayJSON(res)
	case "yaml":
		return displayYAML(res)
	case "human", "":
		displayHuman(res)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

func displayJSON(res result) error {
	output, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(res result) error {
	output, err := yaml.Marshal(res)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayHuman(res result) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Println()

	red.Println("🔬 ROOT CAUSE:")
	fmt.Println(wrapText(res.RootCause, 80, "   "))
	fmt.Println()

	cyan.Println("📄 EXPLANATION:")
	fmt.Println(wrapText(res.Explanation, 80, "   "))
	fmt.Println()

	if res.ProposedFix != models.NotFound && res.ProposedFix != "" {
		green.Println("🚀 PROPOSED FIX:")
		fmt.Println(wrapText(res.ProposedFix, 80, "   "))
		fmt.Println()
	}

	confidenceColor(res.Confidence).Printf("📊 CONFIDENCE: %s\n", strings.ToUpper(res.Confidence))

	if len(res.Similar) > 0 {
		fmt.Println()
		cyan.Println("🗂  SIMILAR PAST INCIDENTS:")
		for i, s := range res.Similar {
			fmt.Printf("   %d. %s #%d - %s (%.0f%%, %s)\n",
				i+1, s.Incident.FullRepo(), s.Incident.Number,
				s.Incident.Title, s.Score*100, s.Incident.State)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func confidenceColor(confidence string) *color.Color {
	switch strings.ToUpper(confidence) {
	case "HIGH":
		return color.New(color.FgGreen, color.Bold)
	case "MEDIUM":
		return color.New(color.FgYellow, color.Bold)
	case "LOW":
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
