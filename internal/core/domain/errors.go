package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown chunking strategy or element type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSchemaMismatch indicates datasets with different columns were combined.
	ErrSchemaMismatch = errors.New("dataset columns do not match")

	// ErrUnsafePath indicates a remote path that would escape the output directory.
	ErrUnsafePath = errors.New("path escapes output directory")

	// ErrEmptyDataset indicates there are no rows to publish.
	ErrEmptyDataset = errors.New("dataset has no rows")

	// Authentication Errors.

	// ErrAuthRequired indicates an operation needs a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")
)

// ErrorKind classifies pipeline failures. Every kind is fatal.
type ErrorKind string

// Failure kinds raised by the pipeline stages.
const (
	// KindNetwork covers listing and download failures.
	KindNetwork ErrorKind = "NetworkError"

	// KindFilesystem covers local write and permission failures.
	KindFilesystem ErrorKind = "FilesystemError"

	// KindPartition covers documents that cannot be read or segmented.
	KindPartition ErrorKind = "PartitionError"

	// KindPublish covers hub rejections of the dataset, its name or the token.
	KindPublish ErrorKind = "PublishError"
)

// PipelineError wraps a failure with its kind and the operation that raised it.
type PipelineError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewPipelineError creates a PipelineError.
func NewPipelineError(kind ErrorKind, op string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Op: op, Err: err}
}

func (e *PipelineError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first PipelineError in err's chain.
// The second return value is false when err carries no kind.
func KindOf(err error) (ErrorKind, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}
