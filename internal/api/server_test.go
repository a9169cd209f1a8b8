package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/domain"
	"github.com/listenupapp/audiobook-mcp/internal/ratelimit"
	"github.com/listenupapp/audiobook-mcp/internal/search"
	"github.com/listenupapp/audiobook-mcp/internal/session"
	"github.com/listenupapp/audiobook-mcp/internal/tools"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a server over the reference catalog.
func setupTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	lib, err := catalog.NewLibrary(catalog.Reference(), search.NewMemoryIndex(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })

	sess := session.New(lib, logger)
	d, err := tools.New(sess, lib, validation.New(), logger, tools.Options{})
	require.NoError(t, err)

	s := NewServer(d, sess, lib, opts, logger)
	return &testServer{Server: s, api: humatest.Wrap(t, s.API())}
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decodeJSON[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "10 books", health.Components["catalog"].Message)
	assert.Equal(t, "no audiobook loaded", health.Components["session"].Message)
}

func TestListTools(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Get("/api/v1/tools")
	require.Equal(t, http.StatusOK, resp.Code)

	descriptors := decodeJSON[[]tools.Descriptor](t, resp.Body.Bytes())
	require.Len(t, descriptors, 10)
	assert.Equal(t, tools.ToolPlayAudiobook, descriptors[0].Name)
	assert.Equal(t, tools.ToolCreateReadingList, descriptors[9].Name)
	assert.NotEmpty(t, descriptors[0].InputSchema)
}

func TestCallTool(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Post("/api/v1/tools/play_audiobook", map[string]any{"query": "1984"})
	require.Equal(t, http.StatusOK, resp.Code)

	res := decodeJSON[tools.Result](t, resp.Body.Bytes())
	assert.False(t, res.IsError)
	assert.Contains(t, res.Text(), `📚 Now Playing: "1984" by George Orwell`)

	resp = ts.api.Get("/api/v1/session")
	require.Equal(t, http.StatusOK, resp.Code)

	var snap struct {
		Status   string               `json:"status"`
		Playback domain.PlaybackState `json:"playback"`
		Progress *domain.ProgressRecord
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &snap))
	assert.Equal(t, "playing", snap.Status)
	require.NotNil(t, snap.Playback.Book)
	assert.Equal(t, "1984", snap.Playback.Book.Title)
	assert.Equal(t, 1, snap.Playback.Chapter)
	require.NotNil(t, snap.Progress)
	assert.Equal(t, snap.Playback.Book.ID, snap.Progress.BookID)
}

func TestCallTool_Faults(t *testing.T) {
	ts := setupTestServer(t, Options{})

	t.Run("unknown tool", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/tools/bogus_tool", map[string]any{})
		require.Equal(t, http.StatusOK, resp.Code)

		res := decodeJSON[tools.Result](t, resp.Body.Bytes())
		assert.True(t, res.IsError)
		assert.Equal(t, "Error: Unknown tool: bogus_tool", res.Text())
	})

	t.Run("invalid arguments", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/tools/search_audiobooks", map[string]any{"query": ""})
		require.Equal(t, http.StatusOK, resp.Code)

		res := decodeJSON[tools.Result](t, resp.Body.Bytes())
		assert.True(t, res.IsError)
		assert.Contains(t, res.Text(), "query is required")
	})
}

func TestReadingLists(t *testing.T) {
	ts := setupTestServer(t, Options{})

	ts.api.Post("/api/v1/tools/create_reading_list", map[string]any{"name": "b", "books": []string{"Dune"}})
	ts.api.Post("/api/v1/tools/create_reading_list", map[string]any{"name": "a", "books": []string{"1984"}})

	resp := ts.api.Get("/api/v1/session/reading-lists")
	require.Equal(t, http.StatusOK, resp.Code)

	lists := decodeJSON[[]domain.ReadingList](t, resp.Body.Bytes())
	require.Len(t, lists, 2)
	assert.Equal(t, "a", lists[0].Name)
	assert.Equal(t, []string{"Dune"}, lists[1].Books)
}

func TestListBooks(t *testing.T) {
	ts := setupTestServer(t, Options{})

	t.Run("all", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/books")
		require.Equal(t, http.StatusOK, resp.Code)

		list := decodeJSON[BookListResponse](t, resp.Body.Bytes())
		assert.Equal(t, 10, list.Total)
		assert.Equal(t, "1984", list.Books[0].Title)
	})

	t.Run("genre search", func(t *testing.T) {
		q := url.Values{"query": {"science fiction"}, "type": {"genre"}, "limit": {"1"}}
		resp := ts.api.Get("/api/v1/books?" + q.Encode())
		require.Equal(t, http.StatusOK, resp.Code)

		list := decodeJSON[BookListResponse](t, resp.Body.Bytes())
		require.Equal(t, 1, list.Total)
		assert.Equal(t, "Dune", list.Books[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/books?query=ulysses")
		require.Equal(t, http.StatusOK, resp.Code)

		list := decodeJSON[BookListResponse](t, resp.Body.Bytes())
		assert.Zero(t, list.Total)
		assert.NotNil(t, list.Books)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/books?limit=0")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestGetBook(t *testing.T) {
	ts := setupTestServer(t, Options{})
	dune := catalog.Reference()[3]

	resp := ts.api.Get("/api/v1/books/" + dune.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, dune, decodeJSON[domain.Book](t, resp.Body.Bytes()))

	resp = ts.api.Get("/api/v1/books/book-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	apiErr := decodeJSON[APIError](t, resp.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(0.001, 2)
	t.Cleanup(limiter.Stop)
	ts := setupTestServer(t, Options{RateLimiter: limiter})

	assert.Equal(t, http.StatusOK, ts.api.Get("/health").Code)
	assert.Equal(t, http.StatusOK, ts.api.Get("/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.api.Get("/health").Code)

	// Another client has its own bucket.
	assert.Equal(t, http.StatusOK, ts.api.Get("/health", "X-Forwarded-For: 203.0.113.9").Code)
}

func TestMCPMount(t *testing.T) {
	mcp := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	ts := setupTestServer(t, Options{MCP: mcp})

	assert.Equal(t, http.StatusAccepted, ts.api.Post("/mcp", map[string]any{}).Code)
}

func TestCORS(t *testing.T) {
	ts := setupTestServer(t, Options{AllowedOrigins: []string{"https://player.example"}})

	resp := ts.api.Get("/health", "Origin: https://player.example")
	assert.Equal(t, "https://player.example", resp.Header().Get("Access-Control-Allow-Origin"))

	resp = ts.api.Get("/health", "Origin: https://other.example")
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Get("/nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "127.0.0.1:1234", "198.51.100.1"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "127.0.0.1:1234", "198.51.100.2"},
		{"remote addr", nil, "192.0.2.7:5555", "192.0.2.7"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"no port", nil, "192.0.2.8", "192.0.2.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}

func TestStatusToCode(t *testing.T) {
	assert.Equal(t, "VALIDATION", statusToCode(http.StatusBadRequest))
	assert.Equal(t, "NOT_FOUND", statusToCode(http.StatusNotFound))
	assert.Equal(t, "RATE_LIMITED", statusToCode(http.StatusTooManyRequests))
	assert.Equal(t, "INTERNAL", statusToCode(http.StatusTeapot))
}
