package models

// NotFound is the sentinel stored in analysis fields the parser could not
// locate in the model response.
const NotFound = "not found"

// Analysis is the structured result extracted from a model response.
// All fields are best-effort substrings of the response text.
type Analysis struct {
	RootCause      string   `json:"root_cause" yaml:"root_cause"`
	Explanation    string   `json:"explanation" yaml:"explanation"`
	ProposedFix    string   `json:"proposed_fix" yaml:"proposed_fix"`
	Confidence     string   `json:"confidence" yaml:"confidence"`
	ReasoningTrace []string `json:"reasoning_trace,omitempty" yaml:"reasoning_trace,omitempty"`

	// Raw is the full response text, kept so nothing is lost when label
	// extraction comes up empty.
	Raw string `json:"-" yaml:"-"`
}

// NewAnalysis returns an Analysis with every field set to the sentinel.
func NewAnalysis() *Analysis {
	return &Analysis{
		RootCause:   NotFound,
		Explanation: NotFound,
		ProposedFix: NotFound,
		Confidence:  NotFound,
	}
}

// Structured reports whether at least one labeled field was extracted.
func (a *Analysis) Structured() bool {
	return a.RootCause != NotFound || a.Explanation != NotFound ||
		a.ProposedFix != NotFound || a.Confidence != NotFound
}
