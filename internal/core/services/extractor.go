package services

import (
	"context"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// Extractor turns local documents into a chunk map.
type Extractor struct {
	segmenter driven.Segmenter
}

// NewExtractor creates an extractor backed by segmenter.
func NewExtractor(segmenter driven.Segmenter) *Extractor {
	return &Extractor{segmenter: segmenter}
}

// CreateChunks segments every document in order.
// The map is keyed by each document's Name. Any failing document aborts
// the whole extraction.
//
// No token-based size bound is applied here; the chunker's character
// limits are the only size control.
func (e *Extractor) CreateChunks(ctx context.Context, docs []domain.LocalDocument) (*domain.ChunkMap, error) {
	chunks := domain.NewChunkMap()

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		texts, err := e.segmenter.Segment(ctx, doc.Path)
		if err != nil {
			return nil, domain.NewPipelineError(domain.KindPartition, doc.Name, err)
		}

		logger.Debug("%s: %d chunks", doc.Name, len(texts))
		chunks.Set(doc.Name, texts)
	}

	return chunks, nil
}
