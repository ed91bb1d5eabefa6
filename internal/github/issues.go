package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// GetIssue fetches a single issue as a bug report
func (c *Client) GetIssue(ctx context.Context, org, repo string, number int) (*models.BugReport, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d", org, repo, number)

	var issue Issue
	if err := c.rest.Get(endpoint, &issue); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return &models.BugReport{
		Text:   fmt.Sprintf("Title: %s\n\nDescription:\n%s", issue.Title, issue.Body),
		Title:  issue.Title,
		Org:    org,
		Repo:   repo,
		Number: issue.Number,
		URL:    issue.HTMLURL,
	}, nil
}

// ListIssues fetches one page of issues from a repository as incidents
func (c *Client) ListIssues(ctx context.Context, org, repo, state string, perPage, page int) ([]*models.Incident, error) {
	if perPage == 0 {
		perPage = 100
	}
	if state == "" {
		state = "all"
	}
	if page == 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("state", state)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("sort", "updated")
	params.Set("direction", "desc")

	endpoint := fmt.Sprintf("repos/%s/%s/issues?%s", org, repo, params.Encode())

	var apiIssues []Issue
	if err := c.rest.Get(endpoint, &apiIssues); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	incidents := make([]*models.Incident, 0, len(apiIssues))
	for _, ai := range apiIssues {
		// The issues endpoint returns pull requests too; they are not
		// incidents.
		if ai.isPullRequest() {
			continue
		}
		incidents = append(incidents, ai.ToIncident(org, repo))
	}

	return incidents, nil
}

// ListAllIssues fetches all issues using pagination
func (c *Client) ListAllIssues(ctx context.Context, org, repo, state string, batchSize int) ([]*models.Incident, error) {
	if batchSize == 0 {
		batchSize = 100
	}

	var all []*models.Incident
	page := 1

	for {
		incidents, err := c.ListIssues(ctx, org, repo, state, batchSize, page)
		if err != nil {
			return nil, err
		}

		if len(incidents) == 0 {
			break
		}

		all = append(all, incidents...)

		if len(incidents) < batchSize {
			break
		}
		page++
	}

	return all, nil
}

// ToIncident converts an API Issue to an indexable incident
func (i *Issue) ToIncident(org, repo string) *models.Incident {
	return &models.Incident{
		Org:       org,
		Repo:      repo,
		Number:    i.Number,
		Title:     i.Title,
		Body:      i.Body,
		State:     i.State,
		URL:       i.HTMLURL,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
