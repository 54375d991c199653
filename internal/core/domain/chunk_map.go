package domain

// ChunkMap maps file names to their ordered chunk texts.
// Keys keep insertion order; chunk order within a file is document order.
type ChunkMap struct {
	keys   []string
	chunks map[string][]string
}

// NewChunkMap creates an empty chunk map.
func NewChunkMap() *ChunkMap {
	return &ChunkMap{
		chunks: make(map[string][]string),
	}
}

// Set stores the chunks for a file.
// Setting an existing file replaces its chunks without changing its position.
func (m *ChunkMap) Set(file string, chunks []string) {
	if _, ok := m.chunks[file]; !ok {
		m.keys = append(m.keys, file)
	}
	m.chunks[file] = chunks
}

// Get returns the chunks of a file.
func (m *ChunkMap) Get(file string) ([]string, bool) {
	chunks, ok := m.chunks[file]
	return chunks, ok
}

// Files returns file names in insertion order.
func (m *ChunkMap) Files() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of files.
func (m *ChunkMap) Len() int {
	return len(m.keys)
}

// TotalChunks returns the sum of chunk counts across files.
func (m *ChunkMap) TotalChunks() int {
	total := 0
	for _, k := range m.keys {
		total += len(m.chunks[k])
	}
	return total
}

// Each calls fn for every file in insertion order.
func (m *ChunkMap) Each(fn func(file string, chunks []string)) {
	for _, k := range m.keys {
		fn(k, m.chunks[k])
	}
}
