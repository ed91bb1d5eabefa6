package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// contentsResponse is the shape of the repository contents API response
type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// FetchFile retrieves a file's text content from a repository. Returns
// ErrNotFound when the path does not exist on the default branch.
func (c *Client) FetchFile(ctx context.Context, org, repo, path string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s", org, repo, url.PathEscape(path))

	var resp contentsResponse
	if err := c.rest.Get(endpoint, &resp); err != nil {
		if isNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	if resp.Encoding != "base64" {
		return resp.Content, nil
	}

	// The API wraps base64 payloads with newlines
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return string(decoded), nil
}

// DefaultBranch returns the repository's default branch name
func (c *Client) DefaultBranch(ctx context.Context, org, repo string) (string, error) {
	var resp struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := c.rest.Get(fmt.Sprintf("repos/%s/%s", org, repo), &resp); err != nil {
		return "", fmt.Errorf("failed to get repository: %w", err)
	}
	return resp.DefaultBranch, nil
}
