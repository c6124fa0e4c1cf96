package http

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonPhrase(t *testing.T) {
	tests := []struct {
		status int
		line   string
		want   string
	}{
		{status: 200, line: "200 OK", want: "OK"},
		{status: 404, line: "404 Not Found", want: "Not Found"},
		{status: 503, line: "503 Cluster Busy", want: "Cluster Busy"},
		{status: 201, line: "", want: "Created"},
		{status: 500, line: "500", want: "Internal Server Error"},
	}

	for _, tt := range tests {
		resp := &http.Response{StatusCode: tt.status, Status: tt.line}
		assert.Equal(t, tt.want, ReasonPhrase(resp))
	}
	assert.Empty(t, ReasonPhrase(nil))
}

func TestReadBody(t *testing.T) {
	body, err := ReadBody(&http.Response{Body: http.NoBody})
	require.NoError(t, err)
	assert.Nil(t, body)

	body, err = ReadBody(&http.Response{Body: io.NopCloser(strings.NewReader(""))})
	require.NoError(t, err)
	assert.NotNil(t, body)
	assert.Empty(t, body)

	body, err = ReadBody(&http.Response{Body: io.NopCloser(strings.NewReader(`{"ok":true}`))})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9200/twitter/tweet/1", JoinURL("http://localhost:9200", "twitter/tweet/1"))
	assert.Equal(t, "http://localhost:9200/twitter/tweet/1", JoinURL("http://localhost:9200/", "/twitter/tweet/1"))
	assert.Equal(t, "http://localhost:9200/", JoinURL("http://localhost:9200", ""))
}

func TestWithQuery(t *testing.T) {
	assert.Equal(t, "twitter/_search", WithQuery("twitter/_search", nil))
	assert.Equal(t, "twitter/_search?routing=kimchy&size=10",
		WithQuery("twitter/_search", map[string]string{"size": "10", "routing": "kimchy"}))
	assert.Equal(t, "twitter/_refresh?a=1&pretty",
		WithQuery("twitter/_refresh?a=1", map[string]string{"pretty": ""}))
}
