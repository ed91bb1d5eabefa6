package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// PullRequest is the subset of the pulls API response we use
type PullRequest struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

// NewPullRequest describes a pull request to open
type NewPullRequest struct {
	Title string
	Body  string
	Head  string
	Base  string
}

// CreateBranch creates a branch pointing at the head of base. A branch that
// already exists is not an error.
func (c *Client) CreateBranch(ctx context.Context, org, repo, branch, base string) error {
	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := c.rest.Get(fmt.Sprintf("repos/%s/%s/git/ref/heads/%s", org, repo, base), &ref); err != nil {
		return fmt.Errorf("failed to resolve base branch %s: %w", base, err)
	}

	payload := map[string]string{
		"ref": fmt.Sprintf("refs/heads/%s", branch),
		"sha": ref.Object.SHA,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := c.rest.Post(fmt.Sprintf("repos/%s/%s/git/refs", org, repo), bytes.NewReader(jsonBody), nil); err != nil {
		if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "422") {
			return nil
		}
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}

	return nil
}

// CreateFile commits a new file to a branch via the contents API
func (c *Client) CreateFile(ctx context.Context, org, repo, branch, path, message, content string) error {
	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"branch":  branch,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s", org, repo, path)
	if err := c.rest.Put(endpoint, bytes.NewReader(jsonBody), nil); err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	return nil
}

// OpenPullRequest opens a pull request and returns its number and URL
func (c *Client) OpenPullRequest(ctx context.Context, org, repo string, pr NewPullRequest) (*PullRequest, error) {
	payload := map[string]string{
		"title": pr.Title,
		"body":  pr.Body,
		"head":  pr.Head,
		"base":  pr.Base,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var created PullRequest
	endpoint := fmt.Sprintf("repos/%s/%s/pulls", org, repo)
	if err := c.rest.Post(endpoint, bytes.NewReader(jsonBody), &created); err != nil {
		return nil, fmt.Errorf("failed to open pull request: %w", err)
	}

	return &created, nil
}
