package mock

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	sbhttp "github.com/abdul-hamid-achik/searchbox/packages/http"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	mock := NewServer(opts...)
	ts := httptest.NewServer(mock.Handler())
	t.Cleanup(ts.Close)
	return mock, ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func seed(t *testing.T, ts *httptest.Server) {
	t.Helper()
	docs := map[string]string{
		"1": `{"user":"kimchy","message":"quick brown fox"}`,
		"2": `{"user":"kimchy","message":"lazy brown dog"}`,
		"3": `{"user":"elastic","message":"hello world"}`,
	}
	for _, id := range []string{"1", "2", "3"} {
		status, _ := do(t, ts, http.MethodPut, "/twitter/tweet/"+id, docs[id])
		require.Equal(t, http.StatusCreated, status)
	}
}

func TestServer_IndexAndGet(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := do(t, ts, http.MethodPut, "/twitter/tweet/1", `{"user":"kimchy"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "1", gjson.Get(body, "_id").String())
	assert.Equal(t, int64(1), gjson.Get(body, "_version").Int())
	assert.True(t, gjson.Get(body, "created").Bool())

	status, body = do(t, ts, http.MethodPut, "/twitter/tweet/1", `{"user":"banon"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), gjson.Get(body, "_version").Int())
	assert.False(t, gjson.Get(body, "created").Bool())

	status, body = do(t, ts, http.MethodGet, "/twitter/tweet/1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, gjson.Get(body, "found").Bool())
	assert.Equal(t, "banon", gjson.Get(body, "_source.user").String())
}

func TestServer_IndexWithoutID(t *testing.T) {
	mock, ts := newTestServer(t)

	status, body := do(t, ts, http.MethodPost, "/twitter/tweet", `{"user":"kimchy"}`)
	assert.Equal(t, http.StatusCreated, status)

	id := gjson.Get(body, "_id").String()
	assert.NotEmpty(t, id)

	_, ok := mock.Store().Get("twitter", "tweet", id)
	assert.True(t, ok)
}

func TestServer_IndexRejectsInvalidBody(t *testing.T) {
	mock, ts := newTestServer(t)

	for _, body := range []string{"", "not json", `[1,2]`} {
		status, resp := do(t, ts, http.MethodPut, "/twitter/tweet/1", body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Contains(t, gjson.Get(resp, "error").String(), "MapperParsingException")
	}
	assert.Equal(t, 0, mock.Store().Len())
}

func TestServer_GetMissing(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/twitter/tweet/404", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, gjson.Get(body, "found").Bool())
	assert.True(t, gjson.Get(body, "found").Exists())
}

func TestServer_Exists(t *testing.T) {
	_, ts := newTestServer(t)
	seed(t, ts)

	tests := []struct {
		path   string
		status int
	}{
		{"/twitter/tweet/1", http.StatusOK},
		{"/twitter/tweet/99", http.StatusNotFound},
		{"/twitter/tweet", http.StatusOK},
		{"/twitter/user", http.StatusNotFound},
		{"/twitter", http.StatusOK},
		{"/facebook", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := do(t, ts, http.MethodHead, tt.path, "")
			assert.Equal(t, tt.status, status)
			assert.Empty(t, body)
		})
	}
}

func TestServer_Delete(t *testing.T) {
	_, ts := newTestServer(t)
	seed(t, ts)

	status, body := do(t, ts, http.MethodDelete, "/twitter/tweet/1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, gjson.Get(body, "found").Bool())
	assert.Equal(t, int64(2), gjson.Get(body, "_version").Int())

	status, body = do(t, ts, http.MethodDelete, "/twitter/tweet/1", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, gjson.Get(body, "found").Bool())
}

func TestServer_Search(t *testing.T) {
	_, ts := newTestServer(t)
	seed(t, ts)

	t.Run("match all", func(t *testing.T) {
		status, body := do(t, ts, http.MethodPost, "/twitter/tweet/_search", `{"query":{"match_all":{}}}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, int64(3), gjson.Get(body, "hits.total").Int())
		assert.Equal(t, []string{"1", "2", "3"}, ids(body))
	})

	t.Run("term", func(t *testing.T) {
		status, body := do(t, ts, http.MethodPost, "/twitter/_search", `{"query":{"term":{"user":"kimchy"}}}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{"1", "2"}, ids(body))
	})

	t.Run("match on text", func(t *testing.T) {
		_, body := do(t, ts, http.MethodPost, "/_all/_search", `{"query":{"match":{"message":"Brown cat"}}}`)
		assert.Equal(t, []string{"1", "2"}, ids(body))
	})

	t.Run("paging", func(t *testing.T) {
		_, body := do(t, ts, http.MethodPost, "/twitter/_search?size=1", `{"from":1}`)
		assert.Equal(t, int64(3), gjson.Get(body, "hits.total").Int())
		assert.Equal(t, []string{"2"}, ids(body))
	})

	t.Run("no hits", func(t *testing.T) {
		_, body := do(t, ts, http.MethodGet, "/twitter/_search", `{"query":{"term":{"user":"nobody"}}}`)
		assert.Equal(t, int64(0), gjson.Get(body, "hits.total").Int())
		assert.True(t, gjson.Get(body, "hits.hits").IsArray())
		assert.Equal(t, gjson.Null, gjson.Get(body, "hits.max_score").Type)
	})

	t.Run("missing index", func(t *testing.T) {
		status, body := do(t, ts, http.MethodPost, "/facebook/_search", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, gjson.Get(body, "error").String(), "IndexMissingException")
	})

	t.Run("unsupported query", func(t *testing.T) {
		status, _ := do(t, ts, http.MethodPost, "/twitter/_search", `{"query":{"fuzzy":{"user":"kimchi"}}}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestServer_Count(t *testing.T) {
	_, ts := newTestServer(t)
	seed(t, ts)

	status, body := do(t, ts, http.MethodPost, "/twitter/tweet/_count", `{"query":{"term":{"user":"elastic"}}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), gjson.Get(body, "count").Int())

	_, body = do(t, ts, http.MethodGet, "/_count", "")
	assert.Equal(t, int64(3), gjson.Get(body, "count").Int())
}

func TestServer_MoreLikeThis(t *testing.T) {
	_, ts := newTestServer(t)
	seed(t, ts)

	status, body := do(t, ts, http.MethodGet, "/twitter/tweet/1/_mlt?mlt_fields=message", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"2"}, ids(body))

	status, body = do(t, ts, http.MethodGet, "/twitter/tweet/99/_mlt", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, gjson.Get(body, "error").String(), "DocumentMissingException")
}

func TestServer_DeleteByQuery(t *testing.T) {
	mock, ts := newTestServer(t)
	seed(t, ts)

	status, body := do(t, ts, http.MethodDelete, "/twitter/tweet/_query", `{"query":{"term":{"user":"kimchy"}}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, gjson.Get(body, "_indices.twitter._shards").Exists())
	assert.Equal(t, 1, mock.Store().Len())

	_, ok := mock.Store().Get("twitter", "tweet", "3")
	assert.True(t, ok)
}

func TestServer_GzipRequestBody(t *testing.T) {
	mock, ts := newTestServer(t)

	payload := []byte(`{"user":"kimchy","message":"compressed"}`)
	compressed, err := sbhttp.Compress(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/twitter/tweet/1", strings.NewReader(string(compressed)))
	require.NoError(t, err)
	req.Header.Set("Content-Encoding", "gzip")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	doc, ok := mock.Store().Get("twitter", "tweet", "1")
	require.True(t, ok)
	assert.JSONEq(t, string(payload), string(doc.Source))

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Compressed)
	assert.Equal(t, payload, reqs[0].Body)
}

func TestServer_CorruptGzipBody(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/twitter/tweet/1", strings.NewReader("not gzip"))
	require.NoError(t, err)
	req.Header.Set("Content-Encoding", "gzip")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_NoHandler(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := do(t, ts, http.MethodPatch, "/twitter/tweet/1", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, gjson.Get(body, "error").String(), "No handler found")
}

func TestServer_Delay(t *testing.T) {
	_, ts := newTestServer(t, WithDelay(50*time.Millisecond))

	start := time.Now()
	do(t, ts, http.MethodGet, "/twitter/tweet/1", "")
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestServer_StartStopsOnCancel(t *testing.T) {
	mock := NewServer(WithPort(0))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- mock.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func ids(body string) []string {
	var out []string
	for _, h := range gjson.Get(body, "hits.hits").Array() {
		out = append(out, h.Get("_id").String())
	}
	return out
}
