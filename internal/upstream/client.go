package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/config"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
)

const (
	userAgent = "shadcn-ui-mcp/1.0"

	// Owner and repository of the shadcn/ui sources on GitHub
	repoOwner = "shadcn-ui"
	repoName  = "ui"
	repoRef   = "main"
)

// RepoEntry represents one entry of a repository directory listing
type RepoEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
}

// Client wraps outbound calls to the two upstream content sources: the
// shadcn/ui documentation site and the source repository host. All calls
// share a fixed timeout and User-Agent.
type Client struct {
	docs   *resty.Client
	raw    *resty.Client
	api    *resty.Client
	logger *logging.Logger
}

// New creates an upstream client from the given configuration
func New(cfg *config.UpstreamConfig) *Client {
	docs := resty.New().
		SetBaseURL(cfg.DocsBaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("User-Agent", userAgent)

	raw := resty.New().
		SetBaseURL(cfg.RawBaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("User-Agent", userAgent)

	api := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/vnd.github+json")

	// Unauthenticated GitHub API calls are heavily rate limited
	if cfg.GitHubToken != "" {
		api.SetAuthToken(cfg.GitHubToken)
	}

	return &Client{
		docs:   docs,
		raw:    raw,
		api:    api,
		logger: logging.UpstreamLogger,
	}
}

// DocPage fetches one page of the documentation site and returns its HTML.
// The path is relative to the docs base URL, e.g. "/docs/components/button".
func (c *Client) DocPage(ctx context.Context, path string) (string, error) {
	resp, err := c.docs.R().SetContext(ctx).Get(path)
	if err != nil {
		return "", errors.UpstreamWrap(err, "doc_page", fmt.Sprintf("failed to fetch %s", path))
	}
	if resp.IsError() {
		return "", errors.UpstreamError("doc_page", fmt.Sprintf("unexpected status %d for %s", resp.StatusCode(), path))
	}

	c.logger.Debug("fetched doc page",
		logging.String("path", path),
		logging.Int("bytes", len(resp.Body())))
	return string(resp.Body()), nil
}

// SourceFile fetches one file of the shadcn-ui/ui repository at the pinned
// ref and returns its raw text. The path is relative to the repository
// root, e.g. "apps/www/registry/new-york/ui/button.tsx".
func (c *Client) SourceFile(ctx context.Context, path string) (string, error) {
	fullPath := fmt.Sprintf("/%s/%s/%s/%s", repoOwner, repoName, repoRef, path)

	resp, err := c.raw.R().SetContext(ctx).Get(fullPath)
	if err != nil {
		return "", errors.UpstreamWrap(err, "source_file", fmt.Sprintf("failed to fetch %s", path))
	}
	if resp.IsError() {
		return "", errors.UpstreamError("source_file", fmt.Sprintf("unexpected status %d for %s", resp.StatusCode(), path))
	}

	c.logger.Debug("fetched source file",
		logging.String("path", path),
		logging.Int("bytes", len(resp.Body())))
	return string(resp.Body()), nil
}

// RepoDirectory lists one directory of the shadcn-ui/ui repository through
// the GitHub contents API.
func (c *Client) RepoDirectory(ctx context.Context, path string) ([]RepoEntry, error) {
	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s", repoOwner, repoName, path)

	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParam("ref", repoRef).
		Get(apiPath)
	if err != nil {
		return nil, errors.UpstreamWrap(err, "repo_directory", fmt.Sprintf("failed to list %s", path))
	}
	if resp.IsError() {
		return nil, errors.UpstreamError("repo_directory", fmt.Sprintf("unexpected status %d for %s", resp.StatusCode(), path))
	}

	var entries []RepoEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, errors.UpstreamWrap(err, "repo_directory", fmt.Sprintf("failed to decode listing for %s", path))
	}

	c.logger.Debug("listed repo directory",
		logging.String("path", path),
		logging.Int("entries", len(entries)))
	return entries, nil
}
