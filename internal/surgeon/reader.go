package surgeon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bugsurgeon/gh-surgeon/internal/github"
)

// ContentReader fetches source file text for the analysis prompt. One lookup
// per requested path; no traversal, pagination or caching.
type ContentReader interface {
	FetchFile(ctx context.Context, path string) (string, error)
}

// RepoReader reads files from a GitHub repository
type RepoReader struct {
	gh   *github.Client
	org  string
	repo string
}

// NewRepoReader creates a reader bound to a repository
func NewRepoReader(gh *github.Client, org, repo string) *RepoReader {
	return &RepoReader{gh: gh, org: org, repo: repo}
}

// FetchFile retrieves a file from the repository's default branch
func (r *RepoReader) FetchFile(ctx context.Context, path string) (string, error) {
	return r.gh.FetchFile(ctx, r.org, r.repo, path)
}

// LocalReader reads files from the local filesystem, rooted at a directory
type LocalReader struct {
	Root string
}

// NewLocalReader creates a reader rooted at dir ("." when empty)
func NewLocalReader(dir string) *LocalReader {
	if dir == "" {
		dir = "."
	}
	return &LocalReader{Root: dir}
}

// FetchFile reads a file relative to the root. Paths escaping the root are
// rejected.
func (r *LocalReader) FetchFile(ctx context.Context, path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("path escapes root: %s", path)
	}

	data, err := os.ReadFile(filepath.Join(r.Root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return "", github.ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}
