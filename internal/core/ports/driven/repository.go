package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

// RepositoryHost resolves repository handles by "owner/name".
type RepositoryHost interface {
	// GetRepo returns a handle to the repository.
	GetRepo(ctx context.Context, fullName string) (Repository, error)
}

// Repository is a handle to one remote repository.
type Repository interface {
	// FullName returns the "owner/name" identifier.
	FullName() string

	// GetContents lists the immediate entries of a folder.
	// When path names a file, the single file entry is returned.
	GetContents(ctx context.Context, path string) ([]domain.RemoteFileEntry, error)
}

// FileTransport downloads raw file bytes.
type FileTransport interface {
	// Fetch GETs url. The caller must close the returned reader.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}
