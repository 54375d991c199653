// Package postprocessors turns partitioned documents into chunk texts.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// Segmenter partitions a file and chunks its elements.
type Segmenter struct {
	partitioner driven.Partitioner
	chunker     driven.Chunker
}

// NewSegmenter creates a segmenter from a partitioner and a chunker.
func NewSegmenter(partitioner driven.Partitioner, chunker driven.Chunker) *Segmenter {
	return &Segmenter{
		partitioner: partitioner,
		chunker:     chunker,
	}
}

// NewSegmenterFromSettings builds the chunker named in cfg through r.
func NewSegmenterFromSettings(
	partitioner driven.Partitioner, r *Registry, cfg domain.ChunkingSettings,
) (*Segmenter, error) {
	c, err := r.Build(cfg)
	if err != nil {
		return nil, err
	}
	return NewSegmenter(partitioner, c), nil
}

// Segment returns the chunk texts of path in document order.
// A file without text yields no chunks and no error.
func (s *Segmenter) Segment(ctx context.Context, path string) ([]string, error) {
	elements, err := s.partitioner.Partition(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	chunks := s.chunker.Chunk(elements)
	logger.Debug("%s: %d elements, %d chunks (%s)", path, len(elements), len(chunks), s.chunker.Name())

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	return texts, nil
}
