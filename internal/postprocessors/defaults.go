package postprocessors

import (
	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/postprocessors/chunker"
)

// RegisterDefaults registers the built-in chunking strategies.
func RegisterDefaults(r *Registry) {
	r.Register(domain.ChunkByTitle, func(cfg domain.ChunkingSettings) (driven.Chunker, error) {
		return chunker.NewByTitle(chunkerOptions(cfg)...), nil
	})
	r.Register(domain.ChunkBasic, func(cfg domain.ChunkingSettings) (driven.Chunker, error) {
		return chunker.NewBasic(chunkerOptions(cfg)...), nil
	})
}

// DefaultRegistry returns a registry with the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// chunkerOptions maps settings to chunker options.
// Zero sizes fall back to the chunker defaults, except CombineUnderNChars
// where zero disables merging and CombineFollowsMax tracks MaxCharacters.
func chunkerOptions(cfg domain.ChunkingSettings) []chunker.Option {
	return []chunker.Option{
		chunker.WithMaxCharacters(cfg.MaxCharacters),
		chunker.WithNewAfterNChars(cfg.NewAfterNChars),
		chunker.WithCombineUnderNChars(cfg.CombineUnderNChars),
	}
}
