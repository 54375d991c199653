package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DatasetHub = (*Client)(nil)

// Default configuration values.
const (
	DefaultEndpoint = domain.DefaultHubEndpoint
	DefaultTimeout  = 5 * time.Minute

	// Revision is the branch every commit targets.
	Revision = "main"

	// DataFileStem is the shard path without extension.
	DataFileStem = "data/train-00000-of-00001"

	// CardPath is the dataset card path.
	CardPath = "README.md"
)

// Config holds configuration for the hub client.
type Config struct {
	// Endpoint is the hub base URL (default: https://huggingface.co).
	Endpoint string

	// Timeout is the per-request timeout (default: 5m).
	Timeout time.Duration

	// HTTPClient is the base client. Its transport is reused underneath
	// the token and logging transports.
	HTTPClient *http.Client
}

// Client publishes datasets to the hub.
type Client struct {
	endpoint string
	base     *http.Client
	api      *http.Client
	tokens   driven.TokenProvider
	encoder  driven.DatasetEncoder
}

// NewClient creates a hub client. encoder produces the shard bytes.
func NewClient(cfg Config, tokens driven.TokenProvider, encoder driven.DatasetEncoder) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	clone := *base
	clone.Timeout = cfg.Timeout

	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		base:     applyTransport(&clone, WithRequestLogging()),
		tokens:   tokens,
		encoder:  encoder,
	}
}

// ensureClient builds the authenticated client on first use.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.api != nil {
		return nil
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	api := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.base), ts)
	api.Timeout = c.base.Timeout
	c.api = api
	return nil
}

// Push creates the repository if needed and commits the dataset shard and card.
func (c *Client) Push(ctx context.Context, ds *domain.Dataset, name string, private bool) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}

	repoID, err := c.createRepo(ctx, name, private)
	if err != nil {
		return err
	}

	var shard bytes.Buffer
	if err := c.encoder.Encode(&shard, ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	card, err := renderCard(repoID, ds, int64(shard.Len()), c.encoder.Extension())
	if err != nil {
		return fmt.Errorf("render dataset card: %w", err)
	}

	files := []commitFile{
		{Path: DataFileStem + c.encoder.Extension(), Content: shard.Bytes()},
		{Path: CardPath, Content: card},
	}
	if err := c.preupload(ctx, repoID, files); err != nil {
		return err
	}

	for i := range files {
		if !files[i].LFS {
			continue
		}
		if err := c.uploadLFS(ctx, repoID, &files[i]); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("Upload dataset (%d rows)", ds.Len())
	if err := c.commit(ctx, repoID, summary, files); err != nil {
		return err
	}

	logger.Info("hub: committed %d files to %s", len(files), repoID)
	return nil
}

// request describes one hub call.
type request struct {
	method      string
	url         string
	body        []byte
	contentType string
	accept      string
	headers     map[string]string

	// anonymous sends the request without the token.
	anonymous bool
}

// do sends req and decodes a JSON response into out when out is non-nil.
// Non-2xx responses become *APIError; transport failures are network errors.
func (c *Client) do(ctx context.Context, req request, out any) error {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	accept := req.accept
	if accept == "" {
		accept = "application/json"
	}
	httpReq.Header.Set("Accept", accept)
	for key, value := range req.headers {
		httpReq.Header.Set(key, value)
	}

	hc := c.api
	if req.anonymous {
		hc = c.base
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return domain.NewPipelineError(domain.KindNetwork, req.method+" "+logURL(httpReq), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewPipelineError(domain.KindNetwork, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
			URL:        logURL(httpReq),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// postJSON sends v as a JSON body.
func (c *Client) postJSON(ctx context.Context, url string, v, out any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		url:         url,
		body:        body,
		contentType: "application/json",
	}, out)
}
