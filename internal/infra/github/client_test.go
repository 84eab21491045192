package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/repolens/repolens/internal/domain/analysis"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-token", WithBaseURL(srv.URL), WithHTTPClient(srv.Client())), srv
}

func TestFetchMetadata(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/studio", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))
		w.Write([]byte(`{"description": "A 3D playground", "clone_url": "https://github.com/acme/studio.git", "stargazers_count": 12}`))
	}))

	meta, err := client.FetchMetadata(context.Background(), "acme", "studio")
	require.NoError(t, err)
	assert.Equal(t, "A 3D playground", meta.Description)
	assert.Equal(t, "https://github.com/acme/studio.git", meta.CloneURL)
}

func TestFetchMetadataErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"missing repo", http.StatusNotFound, domain.ErrRepositoryNotFound},
		{"bad credentials", http.StatusUnauthorized, domain.ErrAccessDenied},
		{"private repo", http.StatusForbidden, domain.ErrAccessDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))

			_, err := client.FetchMetadata(context.Background(), "acme", "studio")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFetchLanguages(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/studio/languages", r.URL.Path)
		w.Write([]byte(`{"TypeScript": 9000, "CSS": 1000}`))
	}))

	langs, err := client.FetchLanguages(context.Background(), "acme", "studio")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"TypeScript": 9000, "CSS": 1000}, langs)
}

func TestFetchFileTreeBlobsOnly(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/studio/git/trees/HEAD", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		w.Write([]byte(`{"tree": [
			{"path": "src", "type": "tree"},
			{"path": "src/index.ts", "type": "blob"},
			{"path": "package.json", "type": "blob"}
		]}`))
	}))

	files, err := client.FetchFileTree(context.Background(), "acme", "studio")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts", "package.json"}, files)
}

func TestFetchReadmeRawAccept(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/studio/readme", r.URL.Path)
		assert.Equal(t, "application/vnd.github.raw+json", r.Header.Get("Accept"))
		w.Write([]byte("# Studio\n\nSet API_KEY first."))
	}))

	readme, err := client.FetchReadme(context.Background(), "acme", "studio")
	require.NoError(t, err)
	assert.Equal(t, "# Studio\n\nSet API_KEY first.", readme)
}

func TestFetchFileContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/acme/studio/contents/package.json" {
			w.Write([]byte(`{"dependencies": {}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	content, ok := client.FetchFileContent(context.Background(), "acme", "studio", "package.json")
	require.True(t, ok)
	assert.Equal(t, `{"dependencies": {}}`, content)

	_, ok = client.FetchFileContent(context.Background(), "acme", "studio", "missing.json")
	assert.False(t, ok)
}

func TestResponseCache(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"description": "cached", "clone_url": ""}`))
	}))

	for i := 0; i < 3; i++ {
		meta, err := client.FetchMetadata(context.Background(), "acme", "studio")
		require.NoError(t, err)
		assert.Equal(t, "cached", meta.Description)
	}
	assert.Equal(t, int64(1), hits.Load())
}

func TestCacheKeyNormalizesDefaultAccept(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{}`))
	}))

	// An empty accept and the explicit default media type are the same
	// request and must share one cache entry.
	_, err := client.get(context.Background(), "/repos/acme/studio", "")
	require.NoError(t, err)
	_, err = client.get(context.Background(), "/repos/acme/studio", "application/vnd.github+json")
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load())
}

func TestErrorsAreNotCached(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"description": "now public", "clone_url": ""}`))
	}))

	_, err := client.FetchMetadata(context.Background(), "acme", "studio")
	require.ErrorIs(t, err, domain.ErrRepositoryNotFound)

	meta, err := client.FetchMetadata(context.Background(), "acme", "studio")
	require.NoError(t, err)
	assert.Equal(t, "now public", meta.Description)
}

func TestResolveIdentityDelegates(t *testing.T) {
	client := New("")

	id, err := client.ResolveIdentity("https://github.com/acme/studio.git")
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Owner: "acme", Name: "studio"}, id)

	_, err = client.ResolveIdentity("not-a-repo")
	assert.ErrorIs(t, err, domain.ErrInvalidLocator)
}
