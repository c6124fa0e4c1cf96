package action

import (
	"net/url"
	"strings"

	"github.com/abdul-hamid-achik/searchbox/packages/codec"
	sbhttp "github.com/abdul-hamid-achik/searchbox/packages/http"
)

// Action is one API call producing a result of type R.
type Action[R any] interface {
	// URI is the request path, including any query string, relative to a
	// server base URL.
	URI() string
	// RestMethodName is the HTTP verb: GET, POST, PUT, DELETE or HEAD.
	RestMethodName() string
	// Data returns the serialized payload, or nil when there is none.
	Data(c codec.Codec) ([]byte, error)
	// Headers are set on the request after it is built.
	Headers() map[string]any
	// CreateResult converts the response into the typed result. body is nil
	// when the response had no entity.
	CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (R, error)
}

// Option customizes an action at construction time.
type Option func(*base)

// WithHeader adds a request header. Values are stringified when sent.
func WithHeader(key string, value any) Option {
	return func(b *base) {
		b.headers[key] = value
	}
}

// WithParameter adds a query string parameter.
func WithParameter(key, value string) Option {
	return func(b *base) {
		b.params[key] = value
	}
}

// WithRouting sets the routing parameter.
func WithRouting(routing string) Option {
	return WithParameter("routing", routing)
}

// WithRefresh asks the engine to refresh affected shards after a write.
func WithRefresh(refresh bool) Option {
	if refresh {
		return WithParameter("refresh", "true")
	}
	return WithParameter("refresh", "false")
}

// base holds the parts every action shares.
type base struct {
	path    string
	method  string
	payload any
	headers map[string]any
	params  map[string]string
}

func newBase(method, path string, payload any, opts []Option) base {
	b := base{
		path:    path,
		method:  method,
		payload: payload,
		headers: make(map[string]any),
		params:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) URI() string {
	return sbhttp.WithQuery(b.path, b.params)
}

func (b *base) RestMethodName() string {
	return b.method
}

func (b *base) Headers() map[string]any {
	out := make(map[string]any, len(b.headers))
	for k, v := range b.headers {
		out[k] = v
	}
	return out
}

// Data passes strings and byte slices through unchanged and marshals
// anything else with the codec.
func (b *base) Data(c codec.Codec) ([]byte, error) {
	switch p := b.payload.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	default:
		if c == nil {
			c = codec.Default()
		}
		return c.Marshal(p)
	}
}

// docPath builds "/index/type/id" with each present segment escaped.
func docPath(segments ...string) string {
	var sb strings.Builder
	for _, s := range segments {
		if s == "" {
			continue
		}
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}

// multiPath builds "/i1,i2/t1,t2/endpoint". No indices means all of them.
func multiPath(indices, types []string, endpoint string) string {
	index := "_all"
	if len(indices) > 0 {
		index = joinEscaped(indices)
	}
	path := "/" + index
	if len(types) > 0 {
		path += "/" + joinEscaped(types)
	}
	return path + "/" + endpoint
}

func joinEscaped(names []string) string {
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = url.PathEscape(n)
	}
	return strings.Join(escaped, ",")
}
