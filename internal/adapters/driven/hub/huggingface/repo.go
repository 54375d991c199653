package huggingface

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// createRepoRequest is the /api/repos/create request format.
type createRepoRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Private      bool   `json:"private"`
}

// whoamiResponse is the /api/whoami-v2 response format.
type whoamiResponse struct {
	Name string `json:"name"`
}

// createRepo creates the dataset repository and returns its "owner/name" id.
// An existing repository is accepted as is; its visibility is not changed.
func (c *Client) createRepo(ctx context.Context, name string, private bool) (string, error) {
	owner, repo, hasOwner := strings.Cut(name, "/")
	if !hasOwner {
		repo = name
		user, err := c.whoami(ctx)
		if err != nil {
			return "", fmt.Errorf("resolve namespace: %w", err)
		}
		owner = user
	}
	repoID := owner + "/" + repo

	req := createRepoRequest{
		Type:    "dataset",
		Name:    repo,
		Private: private,
	}
	if hasOwner {
		req.Organization = owner
	}

	err := c.postJSON(ctx, c.endpoint+"/api/repos/create", req, nil)
	switch {
	case err == nil:
		logger.Info("hub: created dataset repository %s (private=%t)", repoID, private)
	case IsConflict(err):
		logger.Info("hub: dataset repository %s already exists", repoID)
	case IsUnauthorized(err):
		return "", fmt.Errorf("create repository %s: check HF_TOKEN has write access: %w", repoID, err)
	default:
		return "", fmt.Errorf("create repository %s: %w", repoID, err)
	}

	return repoID, nil
}

// whoami returns the user name the token belongs to.
func (c *Client) whoami(ctx context.Context) (string, error) {
	var resp whoamiResponse
	err := c.do(ctx, request{method: http.MethodGet, url: c.endpoint + "/api/whoami-v2"}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Name == "" {
		return "", fmt.Errorf("whoami returned no user name")
	}
	return resp.Name, nil
}
