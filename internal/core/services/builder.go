package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driving"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// Ensure DatasetBuilder implements the interface.
var _ driving.DatasetBuilder = (*DatasetBuilder)(nil)

const (
	// markdownExt is the extension of files picked up after download.
	markdownExt = ".md"

	// DefaultSavePath is used by dry runs without an explicit destination.
	DefaultSavePath = "dataset"
)

// DatasetBuilder runs the download, chunk and tabulate steps for each
// repository and publishes the concatenated result.
type DatasetBuilder struct {
	host      driven.RepositoryHost
	fetcher   *Fetcher
	extractor *Extractor
	hub       driven.DatasetHub
	encoder   driven.DatasetEncoder
	out       io.Writer
}

// NewDatasetBuilder creates a builder. Status messages go to out.
// hub and encoder may be nil when the caller never publishes or saves.
func NewDatasetBuilder(
	host driven.RepositoryHost,
	transport driven.FileTransport,
	segmenter driven.Segmenter,
	hub driven.DatasetHub,
	encoder driven.DatasetEncoder,
	out io.Writer,
) *DatasetBuilder {
	if out == nil {
		out = io.Discard
	}
	return &DatasetBuilder{
		host:      host,
		fetcher:   NewFetcher(transport, out),
		extractor: NewExtractor(segmenter),
		hub:       hub,
		encoder:   encoder,
		out:       out,
	}
}

// Run builds the dataset and then saves and/or publishes it.
// The dataset name is checked before any network call unless nothing is published.
func (b *DatasetBuilder) Run(ctx context.Context, req driving.RunRequest) (*domain.Dataset, error) {
	if !req.DryRun {
		if err := domain.ValidateDatasetName(req.Publish.DatasetName); err != nil {
			return nil, err
		}
	}

	ds, err := b.Build(ctx, req.Build)
	if err != nil {
		return nil, err
	}

	savePath := req.SaveLocal
	if savePath == "" && req.DryRun {
		savePath = DefaultSavePath
	}
	if savePath != "" {
		if err := b.Save(ds, savePath); err != nil {
			return nil, err
		}
	}

	if req.DryRun {
		logger.Info("dry run: %d rows built, nothing published", ds.Len())
		return ds, nil
	}

	if err := b.Publish(ctx, ds, req.Publish); err != nil {
		return nil, err
	}
	return ds, nil
}

// Build processes repositories strictly in order and concatenates their datasets.
func (b *DatasetBuilder) Build(ctx context.Context, req driving.BuildRequest) (*domain.Dataset, error) {
	if len(req.Repos) == 0 {
		return nil, fmt.Errorf("%w: at least one repository is required", domain.ErrInvalidInput)
	}

	fmt.Fprintln(b.out, "Instantiate repository...")

	datasets := make([]*domain.Dataset, 0, len(req.Repos))
	for _, name := range req.Repos {
		ds, err := b.buildRepo(ctx, name, req)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		datasets = append(datasets, ds)
	}

	return domain.Concat(datasets...)
}

// buildRepo runs fetch, extract and assemble for one repository.
func (b *DatasetBuilder) buildRepo(
	ctx context.Context, name string, req driving.BuildRequest,
) (*domain.Dataset, error) {
	logger.Section("Repository " + name)

	dest := req.OutputDir
	if dest == "" {
		short, err := domain.RepoShortName(name)
		if err != nil {
			return nil, err
		}
		dest = short
	}

	repo, err := b.host.GetRepo(ctx, name)
	if err != nil {
		return nil, domain.NewPipelineError(domain.KindNetwork, "get repository", err)
	}

	exists, err := pathExists(dest)
	if err != nil {
		return nil, domain.NewPipelineError(domain.KindFilesystem, "stat "+dest, err)
	}
	if exists {
		fmt.Fprintf(b.out, "Folder %s already exists, skipping download.\n", dest)
	} else {
		fmt.Fprintln(b.out, "Start downloading the files...")
		if err := b.fetcher.DownloadFolder(ctx, repo, req.DocsFolder, dest, true); err != nil {
			return nil, err
		}
	}

	docs, err := findMarkdown(dest, req.DocsFolder)
	if err != nil {
		return nil, domain.NewPipelineError(domain.KindFilesystem, "list markdown files", err)
	}
	logger.Info("found %d markdown files under %s", len(docs), dest)

	fmt.Fprintln(b.out, "Generating the chunks from the markdown files...")
	chunks, err := b.extractor.CreateChunks(ctx, docs)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(b.out, "Creating dataset...")
	ds := CreateDataset(chunks, name)
	logger.Info("%s: %d rows from %d files", name, ds.Len(), chunks.Len())

	return ds, nil
}

// Publish uploads ds to the hub.
func (b *DatasetBuilder) Publish(ctx context.Context, ds *domain.Dataset, req driving.PublishRequest) error {
	if b.hub == nil {
		return domain.NewPipelineError(domain.KindPublish, "push", errors.New("dataset hub not configured"))
	}
	if err := domain.ValidateDatasetName(req.DatasetName); err != nil {
		return domain.NewPipelineError(domain.KindPublish, "push", err)
	}
	if ds.Len() == 0 {
		return domain.NewPipelineError(domain.KindPublish, "push", domain.ErrEmptyDataset)
	}

	fmt.Fprintf(b.out, "Pushing %d rows to %s...\n", ds.Len(), req.DatasetName)
	if err := b.hub.Push(ctx, ds, req.DatasetName, req.Private); err != nil {
		if _, ok := domain.KindOf(err); ok {
			return err
		}
		return domain.NewPipelineError(domain.KindPublish, "push "+req.DatasetName, err)
	}

	fmt.Fprintln(b.out, "Dataset pushed to the hub")
	return nil
}

// Save writes ds to a local file with the configured encoder.
func (b *DatasetBuilder) Save(ds *domain.Dataset, path string) (err error) {
	if b.encoder == nil {
		return domain.NewPipelineError(domain.KindFilesystem, "save", errors.New("dataset encoder not configured"))
	}
	if filepath.Ext(path) == "" {
		path += b.encoder.Extension()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return domain.NewPipelineError(domain.KindFilesystem, "create directory", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return domain.NewPipelineError(domain.KindFilesystem, "create "+path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = domain.NewPipelineError(domain.KindFilesystem, "close "+path, cerr)
		}
	}()

	if err := b.encoder.Encode(file, ds); err != nil {
		return domain.NewPipelineError(domain.KindFilesystem, "encode "+path, err)
	}

	fmt.Fprintf(b.out, "Dataset saved to %s\n", path)
	return nil
}

// findMarkdown lists regular *.md files under dest in lexical order.
// Names are relative to dest/docsFolder when that folder exists, so the
// filename column reads "a.md" rather than "repo/docs/a.md". When two files
// would share a name that way, every name is taken relative to dest instead.
func findMarkdown(dest, docsFolder string) ([]domain.LocalDocument, error) {
	root := dest
	if docsFolder != "" {
		candidate := filepath.Join(dest, filepath.FromSlash(docsFolder))
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			root = candidate
		}
	}

	var (
		docs  []domain.LocalDocument
		full  []string
		seen  = make(map[string]bool)
		clash bool
	)
	err := filepath.WalkDir(dest, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), markdownExt) {
			return nil
		}

		base := root
		if !isWithin(root, path) {
			base = dest
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		destRel, err := filepath.Rel(dest, path)
		if err != nil {
			return err
		}

		name := filepath.ToSlash(rel)
		clash = clash || seen[name]
		seen[name] = true

		docs = append(docs, domain.LocalDocument{Path: path, Name: name})
		full = append(full, filepath.ToSlash(destRel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if clash {
		for i := range docs {
			docs[i].Name = full[i]
		}
	}
	return docs, nil
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
