package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// lfsMediaType is the git-lfs batch API media type.
const lfsMediaType = "application/vnd.git-lfs+json"

// lfsBatchRequest is the LFS batch request format.
type lfsBatchRequest struct {
	Operation string      `json:"operation"`
	Transfers []string    `json:"transfers"`
	Objects   []lfsObject `json:"objects"`
	HashAlgo  string      `json:"hash_algo"`
	Ref       *lfsRef     `json:"ref,omitempty"`
}

type lfsRef struct {
	Name string `json:"name"`
}

type lfsObject struct {
	OID  string `json:"oid"`
	Size int    `json:"size"`
}

// lfsBatchResponse is the LFS batch response format.
type lfsBatchResponse struct {
	Objects []struct {
		OID     string `json:"oid"`
		Size    int    `json:"size"`
		Actions *struct {
			Upload *lfsAction `json:"upload"`
			Verify *lfsAction `json:"verify"`
		} `json:"actions"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"objects"`
}

type lfsAction struct {
	Href   string            `json:"href"`
	Header map[string]string `json:"header"`
}

// uploadLFS uploads f to LFS storage unless the hub already has it.
func (c *Client) uploadLFS(ctx context.Context, repoID string, f *commitFile) error {
	obj := lfsObject{OID: f.OID(), Size: len(f.Content)}

	body, err := json.Marshal(lfsBatchRequest{
		Operation: "upload",
		Transfers: []string{"basic"},
		Objects:   []lfsObject{obj},
		HashAlgo:  "sha256",
		Ref:       &lfsRef{Name: "refs/heads/" + Revision},
	})
	if err != nil {
		return fmt.Errorf("marshal lfs batch: %w", err)
	}

	var batch lfsBatchResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		url:         fmt.Sprintf("%s/datasets/%s.git/info/lfs/objects/batch", c.endpoint, repoID),
		body:        body,
		contentType: lfsMediaType,
		accept:      lfsMediaType,
	}, &batch)
	if err != nil {
		return fmt.Errorf("lfs batch %s: %w", f.Path, err)
	}
	if len(batch.Objects) == 0 {
		return fmt.Errorf("lfs batch %s: empty response", f.Path)
	}

	o := batch.Objects[0]
	if o.Error != nil {
		return &APIError{StatusCode: o.Error.Code, Message: o.Error.Message, URL: f.Path}
	}
	if o.Actions == nil || o.Actions.Upload == nil {
		// Already stored.
		return nil
	}

	// Storage URLs are presigned and must not carry the hub token.
	upload := o.Actions.Upload
	err = c.do(ctx, request{
		method:    http.MethodPut,
		url:       upload.Href,
		body:      f.Content,
		headers:   upload.Header,
		anonymous: true,
	}, nil)
	if err != nil {
		return fmt.Errorf("lfs upload %s: %w", f.Path, err)
	}

	if verify := o.Actions.Verify; verify != nil {
		body, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("marshal lfs verify: %w", err)
		}
		err = c.do(ctx, request{
			method:      http.MethodPost,
			url:         verify.Href,
			body:        body,
			contentType: lfsMediaType,
			accept:      lfsMediaType,
			headers:     verify.Header,
		}, nil)
		if err != nil {
			return fmt.Errorf("lfs verify %s: %w", f.Path, err)
		}
	}

	return nil
}
