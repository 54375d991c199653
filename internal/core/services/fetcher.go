package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// File and directory modes for downloaded content.
const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Fetcher downloads a repository folder to local storage.
type Fetcher struct {
	transport driven.FileTransport
	progress  io.Writer
}

// NewFetcher creates a fetcher. Per-file progress lines go to progress;
// pass io.Discard to silence them.
func NewFetcher(transport driven.FileTransport, progress io.Writer) *Fetcher {
	if progress == nil {
		progress = io.Discard
	}
	return &Fetcher{
		transport: transport,
		progress:  progress,
	}
}

// DownloadFolder mirrors folder of repo into outDir.
// Files land at outDir/<entry path>; existing files are overwritten.
// Directories are descended depth-first in listing order when recursive
// is true and skipped otherwise. The first error aborts the download.
func (f *Fetcher) DownloadFolder(
	ctx context.Context, repo driven.Repository, folder, outDir string, recursive bool,
) error {
	entries, err := repo.GetContents(ctx, folder)
	if err != nil {
		return domain.NewPipelineError(domain.KindNetwork, "list "+displayPath(folder), err)
	}

	// Work stack instead of recursion; pushing reversed keeps pre-order.
	stack := reversed(entries)
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if entry.IsDir() {
			if !recursive {
				logger.Debug("skipping directory %s", entry.Path)
				continue
			}
			children, err := repo.GetContents(ctx, entry.Path)
			if err != nil {
				return domain.NewPipelineError(domain.KindNetwork, "list "+entry.Path, err)
			}
			stack = append(stack, reversed(children)...)
			continue
		}

		if err := f.download(ctx, entry, outDir); err != nil {
			return err
		}
	}

	return nil
}

// download fetches one file and writes it below outDir.
func (f *Fetcher) download(ctx context.Context, entry domain.RemoteFileEntry, outDir string) error {
	dest, err := localPath(outDir, entry.Path)
	if err != nil {
		return domain.NewPipelineError(domain.KindFilesystem, "resolve "+entry.Path, err)
	}

	body, err := f.transport.Fetch(ctx, entry.DownloadURL)
	if err != nil {
		return domain.NewPipelineError(domain.KindNetwork, "download "+entry.Path, err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), dirMode); err != nil {
		return domain.NewPipelineError(domain.KindFilesystem, "create directory", err)
	}

	fmt.Fprintf(f.progress, "downloading %s to %s\n", entry.Path, outDir)

	if err := writeFile(dest, body); err != nil {
		var pe *domain.PipelineError
		if errors.As(err, &pe) {
			return err
		}
		return domain.NewPipelineError(domain.KindFilesystem, "write "+dest, err)
	}
	logger.Debug("downloaded %s (%d bytes reported)", entry.Path, entry.Size)
	return nil
}

// writeFile streams r into path, truncating any existing file.
// Read failures surface as network errors since the body is still streaming.
func writeFile(path string, r io.Reader) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(file, readErrorReader{r}); err != nil {
		var re readError
		if errors.As(err, &re) {
			return domain.NewPipelineError(domain.KindNetwork, "read body", re.err)
		}
		return err
	}
	return nil
}

// readError marks failures on the read side of io.Copy.
type readError struct{ err error }

func (e readError) Error() string { return e.err.Error() }
func (e readError) Unwrap() error { return e.err }

type readErrorReader struct{ r io.Reader }

func (r readErrorReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, readError{err}
	}
	return n, err
}

// localPath maps a remote path below outDir, rejecting escapes.
func localPath(outDir, remotePath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(remotePath))
	if filepath.IsAbs(clean) || clean == ".." ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsafePath, remotePath)
	}
	return filepath.Join(outDir, clean), nil
}

func reversed(entries []domain.RemoteFileEntry) []domain.RemoteFileEntry {
	out := slices.Clone(entries)
	slices.Reverse(out)
	return out
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
