package services

import "github.com/custodia-labs/docs-dataset/internal/core/domain"

// CreateDataset flattens chunks into one row per chunk.
// Files keep the chunk map's order and chunks keep document order.
// A non-empty repoName adds the repo_name column with that value on every row.
func CreateDataset(chunks *domain.ChunkMap, repoName string) *domain.Dataset {
	ds := domain.NewDataset(repoName != "")

	chunks.Each(func(file string, texts []string) {
		for _, text := range texts {
			ds.Append(domain.DatasetRow{
				Filename: file,
				Chunk:    text,
				RepoName: repoName,
			})
		}
	})

	return ds
}
