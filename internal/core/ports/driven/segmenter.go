package driven

import (
	"context"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

// Partitioner splits a document into structural elements in document order.
type Partitioner interface {
	Partition(ctx context.Context, path string) ([]domain.Element, error)
}

// Chunker merges elements into larger chunks.
type Chunker interface {
	// Name returns the strategy name for logging and configuration.
	Name() string

	// Chunk merges elements into chunks, preserving order.
	Chunk(elements []domain.Element) []domain.Chunk
}

// Segmenter turns one file into its ordered chunk texts.
// This is the only seam the core pipeline needs; tests substitute a fake.
type Segmenter interface {
	Segment(ctx context.Context, path string) ([]string, error)
}
