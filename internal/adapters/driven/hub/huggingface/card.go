package huggingface

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

// cardHeader is the YAML metadata block of a dataset card.
type cardHeader struct {
	Configs     []cardConfig `yaml:"configs"`
	DatasetInfo datasetInfo  `yaml:"dataset_info"`
}

type cardConfig struct {
	ConfigName string          `yaml:"config_name"`
	DataFiles  []cardDataFiles `yaml:"data_files"`
}

type cardDataFiles struct {
	Split string `yaml:"split"`
	Path  string `yaml:"path"`
}

type datasetInfo struct {
	Features     []cardFeature `yaml:"features"`
	Splits       []cardSplit   `yaml:"splits"`
	DownloadSize int64         `yaml:"download_size"`
	DatasetSize  int64         `yaml:"dataset_size"`
}

type cardFeature struct {
	Name  string `yaml:"name"`
	Dtype string `yaml:"dtype"`
}

type cardSplit struct {
	Name        string `yaml:"name"`
	NumBytes    int64  `yaml:"num_bytes"`
	NumExamples int    `yaml:"num_examples"`
}

// renderCard renders README.md for the dataset: YAML metadata that lets the
// hub load the train shard, followed by a short description.
func renderCard(repoID string, ds *domain.Dataset, downloadSize int64, ext string) ([]byte, error) {
	size := datasetBytes(ds)

	features := make([]cardFeature, 0, len(ds.Columns()))
	for _, col := range ds.Columns() {
		features = append(features, cardFeature{Name: col, Dtype: "string"})
	}

	header := cardHeader{
		Configs: []cardConfig{{
			ConfigName: "default",
			DataFiles: []cardDataFiles{{
				Split: "train",
				Path:  path.Dir(DataFileStem) + "/train-*" + ext,
			}},
		}},
		DatasetInfo: datasetInfo{
			Features: features,
			Splits: []cardSplit{{
				Name:        "train",
				NumBytes:    size,
				NumExamples: ds.Len(),
			}},
			DownloadSize: downloadSize,
			DatasetSize:  size,
		},
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(header); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n\n")

	fmt.Fprintf(&buf, "# %s\n\n", repoID)
	buf.WriteString("Markdown documentation split into text chunks, one row per chunk.\n")
	if repos := sourceRepos(ds); len(repos) > 0 {
		buf.WriteString("\nSource repositories:\n\n")
		for _, r := range repos {
			fmt.Fprintf(&buf, "- [%s](https://github.com/%s)\n", r, r)
		}
	}

	return buf.Bytes(), nil
}

// datasetBytes is the summed byte length of all string cells.
func datasetBytes(ds *domain.Dataset) int64 {
	var n int64
	for _, r := range ds.Rows() {
		n += int64(len(r.Filename) + len(r.Chunk) + len(r.RepoName))
	}
	return n
}

// sourceRepos returns distinct repo_name values in first-seen order.
func sourceRepos(ds *domain.Dataset) []string {
	seen := make(map[string]bool)
	var repos []string
	for _, r := range ds.Rows() {
		name := strings.TrimSpace(r.RepoName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		repos = append(repos, name)
	}
	return repos
}
