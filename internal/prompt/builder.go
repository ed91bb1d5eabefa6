// Package prompt assembles the text sent to the model: a fixed role preamble,
// the bug report verbatim, and any supplied file contents in caller order.
package prompt

import (
	"fmt"
	"strings"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// systemPreamble is the fixed role description sent as the system prompt.
const systemPreamble = `You are a Senior Debugging Specialist with expertise in systematic root cause analysis. Your goal is to identify and resolve the fundamental cause of issues, not merely patch symptoms.

<reasoning_methodology>
1. Analyze the problem context thoroughly before proposing solutions
2. Form hypotheses about potential root causes
3. Request additional context when needed to validate hypotheses
4. Explain your reasoning process transparently using <thinking> tags
5. Provide solutions that address the underlying issue, not just symptoms
</reasoning_methodology>

<constraints>
- Maintain existing code style and patterns
- Explain the reasoning behind your analysis
- If uncertain, state assumptions clearly and request clarification
- Focus on sustainable fixes over quick patches
- Only suggest changes to files you've actually examined
</constraints>

<tool_usage>
When you need to examine code files, respond with:
TOOL_REQUEST: read_file
FILE: path/to/file
START_LINE: 30 (optional)
END_LINE: 50 (optional)

After examining files, provide your analysis and solution.
</tool_usage>

<output_format>
Always use <thinking> tags to externalize your reasoning process, then provide your final analysis and solution.

For your final response, structure it as:
<analysis>
ROOT_CAUSE: Brief description of the root cause
EXPLANATION: Detailed explanation of why this issue occurs
CONFIDENCE: HIGH/MEDIUM/LOW based on available evidence
</analysis>

<solution>
Provide the corrected code with clear explanations
</solution>
</output_format>`

// formatTrailer restates the expected response structure at the end of the
// user prompt. Models follow the format far more reliably with it repeated.
const formatTrailer = `Provide your analysis in this format:
<analysis>
ROOT_CAUSE: Brief description of the root cause
EXPLANATION: Detailed explanation of why this issue occurs
CONFIDENCE: HIGH/MEDIUM/LOW based on available evidence
</analysis>

<solution>
Provide the corrected code with clear explanations
</solution>`

// System returns the fixed role preamble.
func System() string {
	return systemPreamble
}

// Build composes the user prompt from a bug report and optional file
// contents. The report text appears verbatim; files appear after it, each as
// a fenced block headed by its path, in the order supplied. An empty report
// is accepted and produces a degenerate prompt.
func Build(report string, files []models.FileContext) string {
	var sb strings.Builder

	sb.WriteString(report)
	sb.WriteString("\n\nPlease analyze this systematically and identify the root cause.\n")

	if len(files) > 0 {
		sb.WriteString("\nRelevant file contents:\n")
		for _, f := range files {
			sb.WriteString(fmt.Sprintf("\n```\n# %s\n%s\n```\n", f.Path, f.Content))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(formatTrailer)

	return sb.String()
}

// BuildReact composes the opening message of the tool-request loop, used when
// the report names no files up front.
func BuildReact(report string) string {
	return fmt.Sprintf("Please analyze this bug report and identify the root cause:\n\n%s", report)
}

// FinalInstruction nudges the model to stop requesting files and produce the
// structured analysis.
func FinalInstruction() string {
	return "Please provide your final analysis now with <analysis> and <solution> blocks."
}

// FileContent wraps fetched file content for the next loop turn.
func FileContent(path, content string) string {
	return fmt.Sprintf("File content for %s:\n%s\n\nNow please provide your final analysis with <analysis> and <solution> blocks.", path, content)
}
