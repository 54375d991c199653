package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

const fakeRawBase = "https://raw.test/"

// fakeHost is an in-memory driven.RepositoryHost.
// Files are seeded per repository as path -> content.
type fakeHost struct {
	mu        sync.Mutex
	repos     map[string]*fakeRepo
	getCalls  int
	getErr    error
	transport *fakeTransport
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		repos:     make(map[string]*fakeRepo),
		transport: &fakeTransport{files: make(map[string]string)},
	}
}

// SetFile seeds a file in repo at path.
func (h *fakeHost) SetFile(repo, p, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.repos[repo]
	if !ok {
		r = &fakeRepo{name: repo, files: make(map[string]string)}
		h.repos[repo] = r
	}
	r.files[p] = content
	h.transport.files[fakeRawBase+repo+"/"+p] = content
}

func (h *fakeHost) GetRepo(_ context.Context, fullName string) (driven.Repository, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.getCalls++
	if h.getErr != nil {
		return nil, h.getErr
	}
	r, ok := h.repos[fullName]
	if !ok {
		return nil, fmt.Errorf("repository %s not found", fullName)
	}
	return r, nil
}

// listCalls sums listing calls over all repositories.
func (h *fakeHost) listCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	total := 0
	for _, r := range h.repos {
		total += r.listCalls
	}
	return total
}

type fakeRepo struct {
	name      string
	files     map[string]string
	listCalls int
	listErr   error
}

func (r *fakeRepo) FullName() string { return r.name }

// GetContents lists immediate children of dir, sorted by name like the GitHub API.
func (r *fakeRepo) GetContents(_ context.Context, dir string) ([]domain.RemoteFileEntry, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	if _, ok := r.files[dir]; ok {
		return []domain.RemoteFileEntry{r.fileEntry(dir)}, nil
	}

	prefix := dir
	if prefix != "" {
		prefix += "/"
	}
	seen := make(map[string]bool)
	var entries []domain.RemoteFileEntry
	for p := range r.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		head, _, isNested := strings.Cut(rest, "/")
		child := prefix + head
		if seen[child] {
			continue
		}
		seen[child] = true
		if isNested {
			entries = append(entries, domain.RemoteFileEntry{Path: child, Type: domain.EntryTypeDir})
		} else {
			entries = append(entries, r.fileEntry(child))
		}
	}
	if len(entries) == 0 && dir != "" {
		return nil, fmt.Errorf("404 %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool {
		return path.Base(entries[i].Path) < path.Base(entries[j].Path)
	})
	return entries, nil
}

func (r *fakeRepo) fileEntry(p string) domain.RemoteFileEntry {
	return domain.RemoteFileEntry{
		Path:        p,
		DownloadURL: fakeRawBase + r.name + "/" + p,
		Type:        domain.EntryTypeFile,
		Size:        len(r.files[p]),
	}
}

// fakeTransport serves seeded files by URL.
type fakeTransport struct {
	mu      sync.Mutex
	files   map[string]string
	fetched []string
	err     error
}

func (t *fakeTransport) Fetch(_ context.Context, url string) (io.ReadCloser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetched = append(t.fetched, url)
	if t.err != nil {
		return nil, t.err
	}
	content, ok := t.files[url]
	if !ok {
		return nil, fmt.Errorf("GET %s returned 404", url)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (t *fakeTransport) fetchCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.fetched)
}

// fakeSegmenter treats blank-line separated blocks as chunks.
type fakeSegmenter struct {
	failOn string
}

func (s *fakeSegmenter) Segment(_ context.Context, p string) ([]string, error) {
	if s.failOn != "" && strings.HasSuffix(p, s.failOn) {
		return nil, errors.New("cannot partition")
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var chunks []string
	for _, block := range strings.Split(string(data), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			chunks = append(chunks, block)
		}
	}
	return chunks, nil
}

// fakeHub records pushed datasets.
type fakeHub struct {
	pushes []fakePush
	err    error
}

type fakePush struct {
	ds      *domain.Dataset
	name    string
	private bool
}

func (h *fakeHub) Push(_ context.Context, ds *domain.Dataset, name string, private bool) error {
	if h.err != nil {
		return h.err
	}
	h.pushes = append(h.pushes, fakePush{ds: ds, name: name, private: private})
	return nil
}

// fakeEncoder writes one line per row.
type fakeEncoder struct{}

func (fakeEncoder) Encode(w io.Writer, ds *domain.Dataset) error {
	var buf bytes.Buffer
	for _, r := range ds.Rows() {
		fmt.Fprintf(&buf, "%s\t%s\t%s\n", r.Filename, r.Chunk, r.RepoName)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (fakeEncoder) Extension() string { return ".tsv" }
