package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_GetWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, ContentTypeJSON, r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, payload, string(body))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"hits":{"total":0}}`))
	}))
	defer server.Close()

	req, err := NewBuilder().Build(context.Background(), "GET", server.URL+"/twitter/_search", []byte(payload))
	require.NoError(t, err)

	resp, err := NewTransport().Do(req)
	require.NoError(t, err)
	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "hits")
}

func TestTransport_HeadResponseHasNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	req, err := NewBuilder().Build(context.Background(), "HEAD", server.URL+"/twitter/tweet/9", nil)
	require.NoError(t, err)

	resp, err := NewTransport().Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, raw)

	resp, err = Normalize(req, resp)
	require.NoError(t, err)
	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, HeadNotFoundBody, string(body))
}

func TestTransport_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req, err := NewBuilder().Build(context.Background(), "GET", server.URL, nil)
	require.NoError(t, err)

	_, err = NewTransport(WithTimeout(50 * time.Millisecond)).Do(req)
	assert.Error(t, err)
}

func TestTransport_DoesNotFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	req, err := NewBuilder().Build(context.Background(), "GET", server.URL+"/redirect", nil)
	require.NoError(t, err)

	resp, err := NewTransport().Do(req)
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
}

func TestDoerFunc(t *testing.T) {
	calls := 0
	var d Doer = DoerFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{StatusCode: 204, Body: http.NoBody}, nil
	})

	req, err := http.NewRequest("GET", "http://localhost:9200/", nil)
	require.NoError(t, err)
	resp, err := d.Do(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, 1, calls)
}
