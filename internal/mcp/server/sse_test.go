package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/dispatcher"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/registry"
)

// sseFixture serves the SSE transport over httptest and opens one event
// stream on it.
type sseFixture struct {
	ts     *httptest.Server
	reader *bufio.Reader
}

func newSSEFixture(t *testing.T) *sseFixture {
	t.Helper()

	d := dispatcher.New(registry.New(), types.ServerInfo{Name: "test", Version: "0.0.1"})
	srv := NewSSEServer(d, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ts := httptest.NewServer(srv.handler(ctx))
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/sse")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return &sseFixture{ts: ts, reader: bufio.NewReader(resp.Body)}
}

// readEvent blocks until an event of the given type arrives on the stream
// and returns its data line. Fails the test if nothing arrives in time.
func (f *sseFixture) readEvent(t *testing.T, event string) string {
	t.Helper()

	type read struct {
		data string
		err  error
	}
	ch := make(chan read, 1)
	go func() {
		for {
			line, err := f.reader.ReadString('\n')
			if err != nil {
				ch <- read{err: err}
				return
			}
			if strings.TrimSpace(line) != "event: "+event {
				continue
			}
			data, err := f.reader.ReadString('\n')
			if err != nil {
				ch <- read{err: err}
				return
			}
			ch <- read{data: strings.TrimPrefix(strings.TrimSpace(data), "data: ")}
			return
		}
	}()

	select {
	case r := <-ch:
		require.NoError(t, r.err)
		return r.data
	case <-time.After(2 * time.Second):
		t.Fatalf("no %s event received within 2s", event)
		return ""
	}
}

func TestSSEEndpointEventReachesClient(t *testing.T) {
	f := newSSEFixture(t)

	endpoint := f.readEvent(t, "endpoint")
	assert.True(t, strings.HasPrefix(endpoint, "/message?sessionId="),
		"endpoint event must carry the session's message URL, got %q", endpoint)
}

func TestSSEResponseDeliveredOverStream(t *testing.T) {
	f := newSSEFixture(t)
	endpoint := f.readEvent(t, "endpoint")

	body := `{"jsonrpc":"2.0","id":7,"method":"ping"}`
	post, err := http.Post(f.ts.URL+endpoint, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer post.Body.Close()
	assert.Equal(t, http.StatusAccepted, post.StatusCode)

	var resp types.Response
	require.NoError(t, json.Unmarshal([]byte(f.readEvent(t, "message")), &resp))
	assert.Nil(t, resp.Error)
	assert.Equal(t, json.RawMessage(`7`), resp.ID)
}

func TestSSEConcurrentPostsAllDelivered(t *testing.T) {
	f := newSSEFixture(t)
	endpoint := f.readEvent(t, "endpoint")

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := `{"jsonrpc":"2.0","id":1,"method":"ping"}`
			post, err := http.Post(f.ts.URL+endpoint, "application/json", strings.NewReader(body))
			if err == nil {
				_ = post.Body.Close()
			}
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		var resp types.Response
		require.NoError(t, json.Unmarshal([]byte(f.readEvent(t, "message")), &resp))
		assert.Nil(t, resp.Error)
	}
}

func TestSSEMessageUnknownSession(t *testing.T) {
	f := newSSEFixture(t)

	post, err := http.Post(f.ts.URL+"/message?sessionId=nope", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	require.NoError(t, err)
	defer post.Body.Close()
	assert.Equal(t, http.StatusNotFound, post.StatusCode)
}
