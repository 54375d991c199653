package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

// mockTokenProvider implements driven.TokenProvider for testing.
type mockTokenProvider struct {
	token string
	err   error
}

func (p *mockTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token, p.err
}

func (p *mockTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}

type contentJSON struct {
	Type        string  `json:"type"`
	Path        string  `json:"path"`
	Name        string  `json:"name"`
	Size        int     `json:"size"`
	DownloadURL *string `json:"download_url"`
}

// fakeGitHub serves a tiny repository org/repo with docs/a.md, docs/guide/ and a submodule.
type fakeGitHub struct {
	server *httptest.Server
	auth   []string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	mux := http.NewServeMux()

	raw := func(p string) *string {
		u := f.server.URL + "/raw/org/repo/main/" + p
		return &u
	}
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(HeaderRateLimit, "60")
		w.Header().Set(HeaderRateRemaining, "59")
		w.Header().Set(HeaderRateReset, "1900000000")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("/repos/org/repo", func(w http.ResponseWriter, r *http.Request) {
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		writeJSON(w, map[string]any{"full_name": "org/repo", "default_branch": "main"})
	})
	mux.HandleFunc("/repos/org/repo/contents/docs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []contentJSON{
			{Type: "file", Path: "docs/a.md", Name: "a.md", Size: 5, DownloadURL: raw("docs/a.md")},
			{Type: "dir", Path: "docs/guide", Name: "guide"},
			{Type: "submodule", Path: "docs/vendor", Name: "vendor"},
		})
	})
	mux.HandleFunc("/repos/org/repo/contents/docs/a.md", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, contentJSON{Type: "file", Path: "docs/a.md", Name: "a.md", Size: 5, DownloadURL: raw("docs/a.md")})
	})
	mux.HandleFunc("/raw/org/repo/main/docs/a.md", func(w http.ResponseWriter, r *http.Request) {
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("# A\n"))
	})
	mux.HandleFunc("/repos/org/private", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	})
	mux.HandleFunc("/repos/org/limited", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(HeaderRateLimit, "60")
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRateReset, "1900000000")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func newTestHost(f *fakeGitHub, token string) *Host {
	client := NewClient(
		&mockTokenProvider{token: token},
		f.server.URL,
		WithHTTPClient(f.server.Client()),
		WithRateLimiter(NewRateLimiterWithRate(rate.Inf, 1)),
	)
	return NewHost(client)
}

func TestHost_GetRepo(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "")

	repo, err := host.GetRepo(context.Background(), "org/repo")

	require.NoError(t, err)
	assert.Equal(t, "org/repo", repo.FullName())
	assert.Equal(t, []string{""}, f.auth, "anonymous requests carry no token")
}

func TestHost_GetRepo_WithToken(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "secret")

	_, err := host.GetRepo(context.Background(), "org/repo")

	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer secret"}, f.auth)
}

func TestHost_GetRepo_NotFound(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "")

	_, err := host.GetRepo(context.Background(), "org/missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepoNotFound)
	assert.True(t, IsNotFound(err))
}

func TestHost_GetRepo_Unauthorized(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "stale")

	_, err := host.GetRepo(context.Background(), "org/private")

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestHost_GetRepo_RateLimitedAnonymous(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "")

	_, err := host.GetRepo(context.Background(), "org/limited")

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.Contains(t, err.Error(), "set GITHUB_TOKEN")
}

func TestHost_GetRepo_InvalidName(t *testing.T) {
	host := NewHost(NewClient(nil, ""))

	_, err := host.GetRepo(context.Background(), "no-slash")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHost_GetRepo_TokenError(t *testing.T) {
	f := newFakeGitHub(t)
	client := NewClient(&mockTokenProvider{token: "x", err: domain.ErrAuthRequired}, f.server.URL)

	_, err := NewHost(client).GetRepo(context.Background(), "org/repo")

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestRepository_GetContents_Directory(t *testing.T) {
	f := newFakeGitHub(t)
	repo, err := newTestHost(f, "").GetRepo(context.Background(), "org/repo")
	require.NoError(t, err)

	entries, err := repo.GetContents(context.Background(), "docs")

	require.NoError(t, err)
	require.Len(t, entries, 2, "submodules are left out")
	assert.Equal(t, "docs/a.md", entries[0].Path)
	assert.False(t, entries[0].IsDir())
	assert.Equal(t, 5, entries[0].Size)
	assert.True(t, strings.HasSuffix(entries[0].DownloadURL, "/raw/org/repo/main/docs/a.md"))
	assert.Equal(t, "docs/guide", entries[1].Path)
	assert.True(t, entries[1].IsDir())
	assert.Equal(t, domain.EntryTypeDir, entries[1].Type)
}

func TestRepository_GetContents_File(t *testing.T) {
	f := newFakeGitHub(t)
	repo, err := newTestHost(f, "").GetRepo(context.Background(), "org/repo")
	require.NoError(t, err)

	entries, err := repo.GetContents(context.Background(), "docs/a.md")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "docs/a.md", entries[0].Path)
	assert.False(t, entries[0].IsDir())
}

func TestRepository_GetContents_Missing(t *testing.T) {
	f := newFakeGitHub(t)
	repo, err := newTestHost(f, "").GetRepo(context.Background(), "org/repo")
	require.NoError(t, err)

	_, err = repo.GetContents(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestHost_Fetch(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "secret")

	body, err := host.Fetch(context.Background(), f.server.URL+"/raw/org/repo/main/docs/a.md")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "# A\n", string(data))
	assert.Equal(t, []string{"Bearer secret"}, f.auth)
}

func TestHost_Fetch_NonOK(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "")

	_, err := host.Fetch(context.Background(), f.server.URL+"/raw/org/repo/main/missing.md")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.URL, "missing.md")
}

func TestClient_UpdatesRateLimitFromHeaders(t *testing.T) {
	f := newFakeGitHub(t)
	host := newTestHost(f, "")

	_, err := host.GetRepo(context.Background(), "org/repo")
	require.NoError(t, err)

	rl := host.client.RateLimiter()
	assert.Equal(t, 60, rl.Limit())
	assert.Equal(t, 59, rl.Remaining())
	assert.Equal(t, int64(1900000000), rl.ResetTime().Unix())
}
