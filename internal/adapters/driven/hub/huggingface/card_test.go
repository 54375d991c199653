package huggingface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

func splitCard(t *testing.T, card []byte) (cardHeader, string) {
	t.Helper()
	text := string(card)
	require.True(t, strings.HasPrefix(text, "---\n"))
	rest := strings.TrimPrefix(text, "---\n")
	meta, body, ok := strings.Cut(rest, "---\n")
	require.True(t, ok, "card has a closing metadata delimiter")

	var header cardHeader
	require.NoError(t, yaml.Unmarshal([]byte(meta), &header))
	return header, body
}

func TestRenderCard(t *testing.T) {
	ds := sampleDataset()

	card, err := renderCard("alice/docs", ds, 1234, ".parquet")
	require.NoError(t, err)

	header, body := splitCard(t, card)
	require.Len(t, header.Configs, 1)
	assert.Equal(t, "default", header.Configs[0].ConfigName)
	assert.Equal(t, []cardDataFiles{{Split: "train", Path: "data/train-*.parquet"}}, header.Configs[0].DataFiles)

	assert.Equal(t, []cardFeature{
		{Name: "filename", Dtype: "string"},
		{Name: "chunks", Dtype: "string"},
		{Name: "repo_name", Dtype: "string"},
	}, header.DatasetInfo.Features)
	require.Len(t, header.DatasetInfo.Splits, 1)
	assert.Equal(t, 3, header.DatasetInfo.Splits[0].NumExamples)
	assert.Equal(t, int64(1234), header.DatasetInfo.DownloadSize)
	assert.Equal(t, datasetBytes(ds), header.DatasetInfo.DatasetSize)

	assert.Contains(t, body, "# alice/docs")
	assert.Contains(t, body, "- [org/repo](https://github.com/org/repo)")
	assert.Equal(t, 1, strings.Count(body, "org/repo]"), "repositories are listed once")
}

func TestRenderCard_WithoutRepoName(t *testing.T) {
	ds := domain.NewDataset(false)
	ds.Append(domain.DatasetRow{Filename: "a.md", Chunk: "x"})

	card, err := renderCard("alice/docs", ds, 10, ".parquet")
	require.NoError(t, err)

	header, body := splitCard(t, card)
	assert.Len(t, header.DatasetInfo.Features, 2)
	assert.NotContains(t, body, "Source repositories")
}

func TestDatasetBytes(t *testing.T) {
	ds := domain.NewDataset(true)
	ds.Append(domain.DatasetRow{Filename: "a.md", Chunk: "abc", RepoName: "o/r"})

	assert.Equal(t, int64(10), datasetBytes(ds))
}
