package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

// DatasetEncoder serialises a dataset into a storage format.
type DatasetEncoder interface {
	// Encode writes the dataset to w.
	Encode(w io.Writer, ds *domain.Dataset) error

	// Extension returns the file extension including the dot.
	Extension() string
}

// DatasetHub publishes datasets.
type DatasetHub interface {
	// Push uploads the dataset under name with the given visibility.
	// The call either succeeds as a whole or returns an error.
	Push(ctx context.Context, ds *domain.Dataset, name string, private bool) error
}
