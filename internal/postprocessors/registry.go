package postprocessors

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

// BuilderFunc creates a Chunker from chunking settings.
type BuilderFunc func(cfg domain.ChunkingSettings) (driven.Chunker, error)

// Registry maps chunking strategy names to their builders.
// It allows the strategy to be chosen from configuration.
type Registry struct {
	builders map[domain.ChunkingStrategy]BuilderFunc
}

// NewRegistry creates a new strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[domain.ChunkingStrategy]BuilderFunc),
	}
}

// Register adds a builder to the registry.
// Name should match the chunker's Name() return value.
func (r *Registry) Register(name domain.ChunkingStrategy, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates the chunker named by cfg.Strategy.
func (r *Registry) Build(cfg domain.ChunkingSettings) (driven.Chunker, error) {
	builder, ok := r.builders[cfg.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: chunking strategy %q", domain.ErrUnsupportedType, cfg.Strategy)
	}
	return builder(cfg)
}

// Has returns true if a strategy with the given name is registered.
func (r *Registry) Has(name domain.ChunkingStrategy) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered strategy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name.String())
	}
	sort.Strings(names)
	return names
}
