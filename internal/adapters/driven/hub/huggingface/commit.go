package huggingface

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// uploadModeLFS is the preupload mode of files stored in LFS.
const uploadModeLFS = "lfs"

// sampleSize is how many leading bytes of a file the hub inspects.
const sampleSize = 512

// commitFile is one file added by a commit.
type commitFile struct {
	Path    string
	Content []byte

	// LFS is set from the preupload response.
	LFS bool
}

// OID returns the hex sha256 of the content.
func (f *commitFile) OID() string {
	sum := sha256.Sum256(f.Content)
	return hex.EncodeToString(sum[:])
}

// preuploadRequest is the /preupload request format.
type preuploadRequest struct {
	Files []preuploadFile `json:"files"`
}

type preuploadFile struct {
	Path   string `json:"path"`
	Sample string `json:"sample"`
	Size   int    `json:"size"`
}

// preuploadResponse is the /preupload response format.
type preuploadResponse struct {
	Files []struct {
		Path       string `json:"path"`
		UploadMode string `json:"uploadMode"`
	} `json:"files"`
}

// preupload asks the hub which files go through LFS and marks them.
func (c *Client) preupload(ctx context.Context, repoID string, files []commitFile) error {
	req := preuploadRequest{Files: make([]preuploadFile, 0, len(files))}
	for _, f := range files {
		sample := f.Content
		if len(sample) > sampleSize {
			sample = sample[:sampleSize]
		}
		req.Files = append(req.Files, preuploadFile{
			Path:   f.Path,
			Sample: base64.StdEncoding.EncodeToString(sample),
			Size:   len(f.Content),
		})
	}

	var resp preuploadResponse
	url := fmt.Sprintf("%s/api/datasets/%s/preupload/%s", c.endpoint, repoID, Revision)
	if err := c.postJSON(ctx, url, req, &resp); err != nil {
		return fmt.Errorf("preupload: %w", err)
	}

	modes := make(map[string]string, len(resp.Files))
	for _, f := range resp.Files {
		modes[f.Path] = f.UploadMode
	}
	for i := range files {
		files[i].LFS = modes[files[i].Path] == uploadModeLFS
	}
	return nil
}

// commitLine is one NDJSON line of a commit payload.
type commitLine struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type commitHeader struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type commitRegularFile struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
}

type commitLFSFile struct {
	Path string `json:"path"`
	Algo string `json:"algo"`
	OID  string `json:"oid"`
	Size int    `json:"size"`
}

// commitResponse is the /commit response format.
type commitResponse struct {
	CommitURL string `json:"commitUrl"`
	CommitOID string `json:"commitOid"`
}

// commitPayload renders the NDJSON body: a header line, then one line per file.
func commitPayload(summary string, files []commitFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	lines := []commitLine{{Key: "header", Value: commitHeader{Summary: summary}}}
	for i := range files {
		f := &files[i]
		if f.LFS {
			lines = append(lines, commitLine{Key: "lfsFile", Value: commitLFSFile{
				Path: f.Path,
				Algo: "sha256",
				OID:  f.OID(),
				Size: len(f.Content),
			}})
			continue
		}
		lines = append(lines, commitLine{Key: "file", Value: commitRegularFile{
			Content:  base64.StdEncoding.EncodeToString(f.Content),
			Path:     f.Path,
			Encoding: "base64",
		}})
	}

	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// commit adds files to the main branch in a single commit.
func (c *Client) commit(ctx context.Context, repoID, summary string, files []commitFile) error {
	body, err := commitPayload(summary, files)
	if err != nil {
		return fmt.Errorf("encode commit: %w", err)
	}

	var resp commitResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		url:         fmt.Sprintf("%s/api/datasets/%s/commit/%s", c.endpoint, repoID, Revision),
		body:        body,
		contentType: "application/x-ndjson",
	}, &resp)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logger.Debug("hub: commit %s %s", resp.CommitOID, resp.CommitURL)
	return nil
}
