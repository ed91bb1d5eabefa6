package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BugReport is the free-text defect description under analysis. Org/Repo/Number
// are populated when the report was sourced from a GitHub issue, zero otherwise.
type BugReport struct {
	Text   string `json:"text"`
	Title  string `json:"title,omitempty"`
	Org    string `json:"org,omitempty"`
	Repo   string `json:"repo,omitempty"`
	Number int    `json:"number,omitempty"`
	URL    string `json:"url,omitempty"`
}

// FromIssue returns true when the report is bound to a GitHub issue.
func (r *BugReport) FromIssue() bool {
	return r.Org != "" && r.Repo != "" && r.Number > 0
}

// FullRepo returns the full repository name (org/repo).
func (r *BugReport) FullRepo() string {
	return fmt.Sprintf("%s/%s", r.Org, r.Repo)
}

// FileContext is one source file embedded into the analysis prompt.
// Files are always handled as an ordered slice: the caller-supplied
// order is preserved all the way into the prompt.
type FileContext struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Incident is a past bug report stored in the incident index.
type Incident struct {
	Org       string    `json:"org"`
	Repo      string    `json:"repo"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"` // "open" or "closed"
	RootCause string    `json:"root_cause,omitempty"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullRepo returns the full repository name (org/repo)
func (i *Incident) FullRepo() string {
	return fmt.Sprintf("%s/%s", i.Org, i.Repo)
}

// UUID generates a deterministic UUID based on org/repo#number
func (i *Incident) UUID() string {
	return IncidentUUID(i.Org, i.Repo, i.Number)
}

// BodyHash returns a SHA256 hash of the body for change detection
func (i *Incident) BodyHash() string {
	h := sha256.Sum256([]byte(i.Body))
	return hex.EncodeToString(h[:])
}

// IncidentUUID generates a deterministic UUID from incident identity
func IncidentUUID(org, repo string, number int) string {
	data := fmt.Sprintf("%s/%s#%d", org, repo, number)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(data)).String()
}
