// Package parquet encodes datasets as parquet files.
package parquet

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

// Ensure Encoder implements the interface.
var _ driven.DatasetEncoder = (*Encoder)(nil)

// Extension is the file extension of encoded datasets.
const Extension = ".parquet"

// Row is the parquet schema of a dataset with the repo_name column.
type Row struct {
	Filename string `parquet:"filename,snappy"`
	Chunks   string `parquet:"chunks,snappy"`
	RepoName string `parquet:"repo_name,snappy,dict"`
}

// FileRow is the parquet schema of a dataset without the repo_name column.
type FileRow struct {
	Filename string `parquet:"filename,snappy"`
	Chunks   string `parquet:"chunks,snappy"`
}

// Encoder writes datasets as a single parquet file with one row group.
type Encoder struct{}

// NewEncoder creates a parquet encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Extension returns ".parquet".
func (e *Encoder) Extension() string {
	return Extension
}

// Encode writes ds to w. Column order follows ds.Columns().
func (e *Encoder) Encode(w io.Writer, ds *domain.Dataset) error {
	if ds.HasRepoName() {
		rows := make([]Row, 0, ds.Len())
		for _, r := range ds.Rows() {
			rows = append(rows, Row{Filename: r.Filename, Chunks: r.Chunk, RepoName: r.RepoName})
		}
		return write(w, rows)
	}

	rows := make([]FileRow, 0, ds.Len())
	for _, r := range ds.Rows() {
		rows = append(rows, FileRow{Filename: r.Filename, Chunks: r.Chunk})
	}
	return write(w, rows)
}

func write[T any](w io.Writer, rows []T) error {
	pw := parquet.NewGenericWriter[T](w)
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
