package driving

import (
	"context"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

// BuildRequest describes one run over a list of repositories.
type BuildRequest struct {
	// Repos are "owner/name" identifiers, processed in order.
	Repos []string

	// DocsFolder is the folder downloaded from each repository.
	DocsFolder string

	// OutputDir overrides the per-repository destination when set.
	OutputDir string
}

// PublishRequest describes where a dataset goes.
type PublishRequest struct {
	DatasetName string
	Private     bool
}

// RunRequest describes a full run: build, then save and/or publish.
type RunRequest struct {
	Build   BuildRequest
	Publish PublishRequest

	// DryRun skips the hub entirely; the dataset is saved locally instead.
	DryRun bool

	// SaveLocal writes the dataset to this path when set.
	SaveLocal string
}

// DatasetBuilder builds a dataset from repositories and publishes it.
type DatasetBuilder interface {
	// Build downloads, chunks and tabulates every repository.
	Build(ctx context.Context, req BuildRequest) (*domain.Dataset, error)

	// Publish uploads a built dataset.
	Publish(ctx context.Context, ds *domain.Dataset, req PublishRequest) error

	// Save writes a built dataset to a local file.
	Save(ds *domain.Dataset, path string) error

	// Run builds the dataset, then saves and/or publishes it.
	Run(ctx context.Context, req RunRequest) (*domain.Dataset, error)
}
