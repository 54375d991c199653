package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

func TestCreateDataset_OneRowPerChunk(t *testing.T) {
	chunks := domain.NewChunkMap()
	chunks.Set("a.md", []string{"chunk1", "chunk2"})
	chunks.Set("b/c.md", []string{"chunk1"})

	ds := CreateDataset(chunks, "org/repo")

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []domain.DatasetRow{
		{Filename: "a.md", Chunk: "chunk1", RepoName: "org/repo"},
		{Filename: "a.md", Chunk: "chunk2", RepoName: "org/repo"},
		{Filename: "b/c.md", Chunk: "chunk1", RepoName: "org/repo"},
	}, ds.Rows())
	assert.Equal(t, []string{"filename", "chunks", "repo_name"}, ds.Columns())
}

func TestCreateDataset_RowCountMatchesChunkCount(t *testing.T) {
	chunks := domain.NewChunkMap()
	chunks.Set("one.md", []string{"a", "b", "c"})
	chunks.Set("empty.md", nil)
	chunks.Set("two.md", []string{"d", "e"})

	ds := CreateDataset(chunks, "org/repo")

	assert.Equal(t, chunks.TotalChunks(), ds.Len())
	for _, row := range ds.Rows() {
		assert.NotEqual(t, "empty.md", row.Filename, "empty files contribute no rows")
	}
}

func TestCreateDataset_WithoutRepoName(t *testing.T) {
	chunks := domain.NewChunkMap()
	chunks.Set("a.md", []string{"x"})

	ds := CreateDataset(chunks, "")

	assert.Equal(t, []string{"filename", "chunks"}, ds.Columns())
	assert.Empty(t, ds.Rows()[0].RepoName)
}

func TestCreateDataset_EmptyMap(t *testing.T) {
	ds := CreateDataset(domain.NewChunkMap(), "org/repo")

	assert.Zero(t, ds.Len())
	assert.True(t, ds.HasRepoName())
}
