package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Client wraps the go-github client with helper methods.
type Client struct {
	gh            *gh.Client
	http          *http.Client
	base          *http.Client
	apiURL        string
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used underneath the token transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.base = hc
	}
}

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = rl
	}
}

// NewClient creates a new GitHub API client with a token provider.
// An empty apiURL selects the public GitHub API. A provider that is not
// authenticated results in anonymous requests.
func NewClient(tokenProvider driven.TokenProvider, apiURL string, opts ...Option) *Client {
	c := &Client{
		apiURL:        apiURL,
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ensureClient initializes the go-github client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.gh != nil {
		return nil
	}

	base := c.base
	if base == nil {
		base = &http.Client{Timeout: DefaultTimeout}
	}

	hc := base
	if c.authenticated() {
		token, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}

		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
		tc.Timeout = DefaultTimeout
		hc = tc
	} else {
		logger.Debug("github: no token configured, using anonymous access")
	}

	client := gh.NewClient(hc)
	if c.apiURL != "" && c.apiURL != domain.DefaultGitHubAPIURL {
		u, err := url.Parse(strings.TrimSuffix(c.apiURL, "/") + "/")
		if err != nil {
			return fmt.Errorf("%w: github api url %q", domain.ErrInvalidInput, c.apiURL)
		}
		client.BaseURL = u
	}

	c.gh = client
	c.http = hc
	return nil
}

// GetRepository fetches a single repository.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get repo")
	}

	return repository, nil
}

// GetContents lists a path of a repository at its default branch.
// For a file the first return value is set, for a directory the second.
func (c *Client) GetContents(
	ctx context.Context, owner, repo, path string,
) (*gh.RepositoryContent, []*gh.RepositoryContent, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	file, dir, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, nil, c.wrapError(err, "get contents")
	}

	return file, dir, nil
}

// Download GETs a raw file URL with the client's credentials.
// Any status other than 200 is returned as an APIError.
func (c *Client) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        rawURL,
		}
	}

	return resp.Body, nil
}

// authenticated reports whether requests carry a token.
func (c *Client) authenticated() bool {
	return c.tokenProvider != nil && c.tokenProvider.IsAuthenticated()
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Check for rate limit error
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	// Check for GitHub error response
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
