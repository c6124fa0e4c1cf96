package mock

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Match(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request, []byte, map[string]string) {}

	r := NewRouter()
	r.Handle(http.MethodPost, "/{{index}}/_search", "search", noop)
	r.Handle(http.MethodPost, "/{{index}}/{{type}}", "index", noop)
	r.Handle(http.MethodGet, "/{{index}}/{{type}}/{{id}}", "get", noop)
	r.Handle(http.MethodGet, "/_status", "status", noop)

	route, params := r.Match("POST", "/twitter/_search")
	require.NotNil(t, route)
	assert.Equal(t, "search", route.Name)
	assert.Equal(t, map[string]string{"index": "twitter"}, params)

	route, params = r.Match("post", "/twitter/tweet/")
	require.NotNil(t, route)
	assert.Equal(t, "index", route.Name)
	assert.Equal(t, "tweet", params["type"])

	route, params = r.Match("GET", "/twitter/tweet/1")
	require.NotNil(t, route)
	assert.Equal(t, map[string]string{"index": "twitter", "type": "tweet", "id": "1"}, params)

	route, _ = r.Match("GET", "/_status")
	require.NotNil(t, route)
	assert.Equal(t, "status", route.Name)

	route, _ = r.Match("DELETE", "/twitter/tweet/1")
	assert.Nil(t, route)

	assert.Len(t, r.Routes(), 4)
}
