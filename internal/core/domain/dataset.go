package domain

import (
	"fmt"
	"slices"
)

// Dataset column names.
const (
	ColumnFilename = "filename"
	ColumnChunks   = "chunks"
	ColumnRepoName = "repo_name"
)

// DatasetRow is one chunk of one file.
type DatasetRow struct {
	Filename string
	Chunk    string

	// RepoName is set only when the dataset has the repo_name column.
	RepoName string
}

// Dataset is an ordered collection of rows with a fixed column set.
type Dataset struct {
	columns []string
	rows    []DatasetRow
}

// NewDataset creates an empty dataset.
// withRepoName adds the repo_name column.
func NewDataset(withRepoName bool) *Dataset {
	cols := []string{ColumnFilename, ColumnChunks}
	if withRepoName {
		cols = append(cols, ColumnRepoName)
	}
	return &Dataset{columns: cols}
}

// Append adds a row. RepoName is dropped when the column is absent.
func (d *Dataset) Append(row DatasetRow) {
	if !d.HasRepoName() {
		row.RepoName = ""
	}
	d.rows = append(d.rows, row)
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return slices.Clone(d.columns)
}

// HasRepoName reports whether the repo_name column is present.
func (d *Dataset) HasRepoName() bool {
	return slices.Contains(d.columns, ColumnRepoName)
}

// Rows returns a copy of the rows.
func (d *Dataset) Rows() []DatasetRow {
	return slices.Clone(d.rows)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Concat concatenates datasets in order.
// All inputs must share the same columns. With no inputs an empty dataset
// carrying the repo_name column is returned.
func Concat(datasets ...*Dataset) (*Dataset, error) {
	if len(datasets) == 0 {
		return NewDataset(true), nil
	}

	first := datasets[0]
	out := &Dataset{columns: first.Columns()}
	for i, ds := range datasets {
		if !slices.Equal(ds.columns, out.columns) {
			return nil, fmt.Errorf("%w: dataset %d has %v, want %v",
				ErrSchemaMismatch, i, ds.columns, out.columns)
		}
		out.rows = append(out.rows, ds.rows...)
	}
	return out, nil
}
