package github

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// Event represents a GitHub webhook event
type Event struct {
	Action string      `json:"action"`
	Issue  *EventIssue `json:"issue"`
	Repo   *EventRepo  `json:"repository"`
}

// EventIssue represents issue data in an event
type EventIssue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
}

// EventRepo represents repository data in an event
type EventRepo struct {
	FullName string `json:"full_name"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
	Name string `json:"name"`
}

// ParseEventFile reads and parses a GitHub event JSON file
func ParseEventFile(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event JSON: %w", err)
	}

	return &event, nil
}

// ToReport converts the event issue to a bug report
func (e *Event) ToReport() *models.BugReport {
	if e.Issue == nil || e.Repo == nil {
		return nil
	}

	return &models.BugReport{
		Text:   fmt.Sprintf("Title: %s\n\nDescription:\n%s", e.Issue.Title, e.Issue.Body),
		Title:  e.Issue.Title,
		Org:    e.Repo.Owner.Login,
		Repo:   e.Repo.Name,
		Number: e.Issue.Number,
		URL:    e.Issue.HTMLURL,
	}
}

// ToIncident converts the event issue to an indexable incident
func (e *Event) ToIncident() *models.Incident {
	if e.Issue == nil || e.Repo == nil {
		return nil
	}

	return &models.Incident{
		Org:    e.Repo.Owner.Login,
		Repo:   e.Repo.Name,
		Number: e.Issue.Number,
		Title:  e.Issue.Title,
		Body:   e.Issue.Body,
		State:  e.Issue.State,
		URL:    e.Issue.HTMLURL,
	}
}

// IsIssueEvent checks if this is an issue event
func (e *Event) IsIssueEvent() bool {
	return e.Issue != nil
}

// IsOpenedEvent checks if this is an issue opened event
func (e *Event) IsOpenedEvent() bool {
	return e.Action == "opened"
}

// IsEditedEvent checks if this is an issue edited event
func (e *Event) IsEditedEvent() bool {
	return e.Action == "edited"
}
