package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	// ContentTypeJSON is attached to every request entity
	ContentTypeJSON = "application/json; charset=utf-8"
	// EncodingGzip is the Content-Encoding of compressed entities
	EncodingGzip = "gzip"
)

type method struct {
	name string
	// enclosesEntity marks verbs that carry a payload. GET and DELETE are
	// included because the search API reads bodies on both.
	enclosesEntity bool
}

var methods = map[string]method{
	http.MethodGet:    {name: http.MethodGet, enclosesEntity: true},
	http.MethodPost:   {name: http.MethodPost, enclosesEntity: true},
	http.MethodPut:    {name: http.MethodPut, enclosesEntity: true},
	http.MethodDelete: {name: http.MethodDelete, enclosesEntity: true},
	http.MethodHead:   {name: http.MethodHead, enclosesEntity: false},
}

// SupportedMethods lists the verb names Build accepts.
func SupportedMethods() []string {
	return []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead}
}

func lookupMethod(verb string) (method, bool) {
	m, ok := methods[strings.ToUpper(strings.TrimSpace(verb))]
	return m, ok
}

// EnclosesEntity reports whether verb is a supported, body-carrying method.
func EnclosesEntity(verb string) bool {
	m, ok := lookupMethod(verb)
	return ok && m.enclosesEntity
}

// Builder turns a verb name, URL and payload into an *http.Request.
type Builder struct {
	compress bool
	logger   *zap.Logger
}

type BuilderOption func(*Builder)

// WithCompression enables gzip compression of request entities
func WithCompression(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.compress = enabled
	}
}

// WithLogger sets the logger used for request construction tracing
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Compression reports whether entities are gzip-compressed.
func (b *Builder) Compression() bool {
	return b.compress
}

// Build constructs the request for verb against url. A nil payload, or a
// verb that does not enclose an entity, yields a request without a body.
// Headers other than the entity's Content-Type and Content-Encoding are left
// to the caller.
func (b *Builder) Build(ctx context.Context, verb, url string, payload []byte) (*http.Request, error) {
	m, ok := lookupMethod(verb)
	if !ok {
		return nil, &MethodError{Method: verb}
	}

	var body io.Reader
	var entity []byte
	if m.enclosesEntity && payload != nil {
		entity = payload
		if b.compress {
			compressed, err := Compress(payload)
			if err != nil {
				return nil, fmt.Errorf("compress %s entity: %w", m.name, err)
			}
			entity = compressed
		}
		body = bytes.NewReader(entity)
	}

	req, err := http.NewRequestWithContext(ctx, m.name, url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", m.name, err)
	}

	b.logger.Debug("method created based on client request",
		zap.String("method", m.name),
		zap.String("url", url),
	)

	if body != nil {
		req.Header.Set("Content-Type", ContentTypeJSON)
		if b.compress {
			req.Header.Set("Content-Encoding", EncodingGzip)
		}
	}

	return req, nil
}
