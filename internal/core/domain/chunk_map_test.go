package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkMap_PreservesInsertionOrder(t *testing.T) {
	m := NewChunkMap()
	m.Set("z.md", []string{"z1"})
	m.Set("a.md", []string{"a1", "a2"})
	m.Set("m.md", nil)

	assert.Equal(t, []string{"z.md", "a.md", "m.md"}, m.Files())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 3, m.TotalChunks())
}

func TestChunkMap_SetReplacesInPlace(t *testing.T) {
	m := NewChunkMap()
	m.Set("a.md", []string{"old"})
	m.Set("b.md", []string{"b"})
	m.Set("a.md", []string{"new1", "new2"})

	assert.Equal(t, []string{"a.md", "b.md"}, m.Files())
	chunks, ok := m.Get("a.md")
	assert.True(t, ok)
	assert.Equal(t, []string{"new1", "new2"}, chunks)
}

func TestChunkMap_Get_Missing(t *testing.T) {
	m := NewChunkMap()
	_, ok := m.Get("nope.md")
	assert.False(t, ok)
}

func TestChunkMap_Each(t *testing.T) {
	m := NewChunkMap()
	m.Set("a.md", []string{"1", "2"})
	m.Set("b.md", []string{"3"})

	var seen []string
	m.Each(func(file string, chunks []string) {
		for _, c := range chunks {
			seen = append(seen, file+":"+c)
		}
	})

	assert.Equal(t, []string{"a.md:1", "a.md:2", "b.md:3"}, seen)
}

func TestChunkMap_FilesIsACopy(t *testing.T) {
	m := NewChunkMap()
	m.Set("a.md", nil)

	files := m.Files()
	files[0] = "mutated"

	assert.Equal(t, []string{"a.md"}, m.Files())
}
