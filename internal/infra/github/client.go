package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	domain "github.com/repolens/repolens/internal/domain/analysis"
)

const (
	defaultBaseURL = "https://api.github.com"
	cacheSize      = 256
	// maxTreeEntries guards against pathological monorepos.
	maxTreeEntries = 20000
)

// Client is the GitHub implementation of the repository data provider port.
// Credentials and endpoint are passed in at construction; the client holds
// no mutable state beyond the response cache, so concurrent analyses can
// share one instance.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	cache   *lru.Cache[string, []byte]
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint (tests, GitHub Enterprise).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client. An empty token means anonymous access with GitHub's
// lower rate limit.
func New(token string, opts ...Option) *Client {
	cache, _ := lru.New[string, []byte](cacheSize)
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		token:   token,
		cache:   cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveIdentity parses the locator; no network involved.
func (c *Client) ResolveIdentity(locator string) (domain.Identity, error) {
	return domain.ResolveLocator(locator)
}

// FetchMetadata is the mandatory fetch: provider errors propagate.
func (c *Client) FetchMetadata(ctx context.Context, owner, name string) (domain.Metadata, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, name), "")
	if err != nil {
		return domain.Metadata{}, err
	}
	var payload struct {
		Description string `json:"description"`
		CloneURL    string `json:"clone_url"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Metadata{}, fmt.Errorf("decoding repository metadata: %w", err)
	}
	return domain.Metadata{Description: payload.Description, CloneURL: payload.CloneURL}, nil
}

// FetchLanguages returns the language → byte count histogram.
func (c *Client) FetchLanguages(ctx context.Context, owner, name string) (map[string]int64, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, name), "")
	if err != nil {
		return nil, err
	}
	var langs map[string]int64
	if err := json.Unmarshal(body, &langs); err != nil {
		return nil, fmt.Errorf("decoding languages: %w", err)
	}
	return langs, nil
}

// FetchFileTree returns blob paths of the default branch in tree order.
func (c *Client) FetchFileTree(ctx context.Context, owner, name string) ([]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/git/trees/HEAD?recursive=1", owner, name), "")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Tree []struct {
			Path string `json:"path"`
			Type string `json:"type"`
		} `json:"tree"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding file tree: %w", err)
	}
	var paths []string
	for _, entry := range payload.Tree {
		if entry.Type != "blob" {
			continue
		}
		paths = append(paths, entry.Path)
		if len(paths) == maxTreeEntries {
			break
		}
	}
	return paths, nil
}

// FetchReadme returns the raw README text.
func (c *Client) FetchReadme(ctx context.Context, owner, name string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/readme", owner, name), "application/vnd.github.raw+json")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchFileContent returns raw file content, ok=false on any error.
func (c *Client) FetchFileContent(ctx context.Context, owner, name, path string) (string, bool) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", owner, name, path), "application/vnd.github.raw+json")
	if err != nil {
		return "", false
	}
	return string(body), true
}

// get performs one GET against the API, serving repeats from the LRU cache
// to stay inside rate limits.
func (c *Client) get(ctx context.Context, path, accept string) ([]byte, error) {
	if accept == "" {
		accept = "application/vnd.github+json"
	}
	cacheKey := accept + " " + path
	if body, ok := c.cache.Get(cacheKey); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", domain.ErrAccessDenied, path)
	default:
		return nil, fmt.Errorf("github request %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("reading github response: %w", err)
	}
	c.cache.Add(cacheKey, body)
	return body, nil
}
