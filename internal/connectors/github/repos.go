package github

import (
	"context"
	"fmt"
	"io"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// Verify interface compliance.
var (
	_ driven.RepositoryHost = (*Host)(nil)
	_ driven.Repository     = (*Repository)(nil)
	_ driven.FileTransport  = (*Host)(nil)
)

// Host resolves repositories and downloads raw files through a Client.
type Host struct {
	client *Client
}

// NewHost creates a repository host backed by client.
func NewHost(client *Client) *Host {
	return &Host{client: client}
}

// GetRepo checks that the repository exists and returns a handle to it.
func (h *Host) GetRepo(ctx context.Context, fullName string) (driven.Repository, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	repo, err := h.client.GetRepository(ctx, owner, name)
	if err != nil {
		switch {
		case IsNotFound(err):
			return nil, fmt.Errorf("%w: %s", ErrRepoNotFound, fullName)
		case IsUnauthorized(err):
			return nil, fmt.Errorf("%s: check GITHUB_TOKEN: %w", fullName, err)
		case IsRateLimited(err) && !h.client.authenticated():
			return nil, fmt.Errorf("%s: set GITHUB_TOKEN for a higher limit: %w", fullName, err)
		}
		return nil, err
	}

	logger.Debug("github: resolved %s (default branch %s)", repo.GetFullName(), repo.GetDefaultBranch())
	return &Repository{
		client:   h.client,
		owner:    owner,
		name:     name,
		fullName: fullName,
	}, nil
}

// Fetch downloads a raw file URL.
func (h *Host) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	return h.client.Download(ctx, url)
}

// Repository is a handle to one GitHub repository.
type Repository struct {
	client   *Client
	owner    string
	name     string
	fullName string
}

// FullName returns the "owner/name" identifier.
func (r *Repository) FullName() string {
	return r.fullName
}

// GetContents lists path at the default branch.
// A file path yields a single entry. Submodules are not followed and are
// left out of listings.
func (r *Repository) GetContents(ctx context.Context, path string) ([]domain.RemoteFileEntry, error) {
	file, dir, err := r.client.GetContents(ctx, r.owner, r.name, path)
	if err != nil {
		return nil, err
	}

	if file != nil {
		return []domain.RemoteFileEntry{toEntry(file)}, nil
	}

	entries := make([]domain.RemoteFileEntry, 0, len(dir))
	for _, c := range dir {
		if c.GetType() == domain.EntryTypeSubmodule {
			logger.Debug("github: skipping submodule %s", c.GetPath())
			continue
		}
		entries = append(entries, toEntry(c))
	}
	return entries, nil
}

func toEntry(c *gh.RepositoryContent) domain.RemoteFileEntry {
	return domain.RemoteFileEntry{
		Path:        c.GetPath(),
		DownloadURL: c.GetDownloadURL(),
		Type:        c.GetType(),
		Size:        c.GetSize(),
	}
}

func splitFullName(fullName string) (string, string, error) {
	if _, err := domain.RepoShortName(fullName); err != nil {
		return "", "", err
	}
	owner, name, _ := strings.Cut(fullName, "/")
	return owner, name, nil
}
