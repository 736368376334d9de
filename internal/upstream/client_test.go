package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/config"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return New(&config.UpstreamConfig{
		DocsBaseURL:    ts.URL,
		RawBaseURL:     ts.URL,
		APIBaseURL:     ts.URL,
		TimeoutSeconds: 5,
	})
}

func TestSourceFileBuildsRepoPath(t *testing.T) {
	var gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("content"))
	}))

	content, err := client.SourceFile(context.Background(), "apps/www/registry/default/ui/button.tsx")
	require.NoError(t, err)
	assert.Equal(t, "content", content)
	assert.Equal(t, "/shadcn-ui/ui/main/apps/www/registry/default/ui/button.tsx", gotPath)
}

func TestDocPageErrorStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	_, err := client.DocPage(context.Background(), "/docs/components/button")
	require.Error(t, err)
	assert.True(t, errors.IsComponentError(err, "upstream"))
	assert.Contains(t, err.Error(), "404")
}

func TestRepoDirectoryDecodesListing(t *testing.T) {
	var gotRef string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRef = r.URL.Query().Get("ref")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"button.tsx","path":"x/button.tsx","type":"file"}]`))
	}))

	entries, err := client.RepoDirectory(context.Background(), "apps/www/registry/new-york/ui")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "button.tsx", entries[0].Name)
	assert.Equal(t, "file", entries[0].Type)
	assert.Equal(t, "main", gotRef)
}

func TestRepoDirectoryMalformedBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := client.RepoDirectory(context.Background(), "apps/www/registry/new-york/ui")
	assert.Error(t, err)
}
