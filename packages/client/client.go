package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/searchbox/packages/action"
	"github.com/abdul-hamid-achik/searchbox/packages/codec"
	"github.com/abdul-hamid-achik/searchbox/packages/core/config"
	sbhttp "github.com/abdul-hamid-achik/searchbox/packages/http"
	"github.com/abdul-hamid-achik/searchbox/packages/metrics"
)

// OpaqueIDHeader carries a per-request id when WithOpaqueID is enabled.
const OpaqueIDHeader = "X-Opaque-Id"

// Client executes actions against a list of servers. It is safe for
// concurrent use.
type Client struct {
	servers        *ServerList
	builder        *sbhttp.Builder
	transport      sbhttp.Doer
	codec          codec.Codec
	logger         *zap.Logger
	metrics        *metrics.Collector
	defaultHeaders map[string]string
	limiter        *rate.Limiter
	opaqueID       bool

	compress bool
}

type Option func(*Client)

// WithCompression gzip-compresses request entities
func WithCompression(enabled bool) Option {
	return func(c *Client) {
		c.compress = enabled
	}
}

// WithCodec sets the codec used for payloads and results
func WithCodec(cd codec.Codec) Option {
	return func(c *Client) {
		if cd != nil {
			c.codec = cd
		}
	}
}

// WithTransport replaces the pooled HTTP transport
func WithTransport(d sbhttp.Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.transport = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every exchange in the given collector
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithDefaultHeaders sets multiple default headers for all requests
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables
// the limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithOpaqueID tags every request with a fresh X-Opaque-Id so it can be
// traced in the engine's slow and task logs.
func WithOpaqueID(enabled bool) Option {
	return func(c *Client) {
		c.opaqueID = enabled
	}
}

// New creates a client for servers.
func New(servers *ServerList, opts ...Option) *Client {
	c := &Client{
		servers:        servers,
		codec:          codec.Default(),
		logger:         zap.NewNop(),
		defaultHeaders: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = sbhttp.NewTransport()
	}
	c.builder = sbhttp.NewBuilder(
		sbhttp.WithCompression(c.compress),
		sbhttp.WithLogger(c.logger),
	)

	return c
}

// NewFromConfig builds a client from configuration. Extra options are
// applied after the configured ones.
func NewFromConfig(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	servers, err := NewServerList(cfg.Servers...)
	if err != nil {
		return nil, err
	}
	cd, err := codec.ByName(cfg.Codec)
	if err != nil {
		return nil, err
	}

	transportOpts := []sbhttp.TransportOption{
		sbhttp.WithMaxIdleConns(cfg.MaxIdleConns, cfg.MaxIdleConnsPerHost),
		sbhttp.WithValidateSSL(cfg.GetValidateSSL()),
	}
	if cfg.Timeout > 0 {
		transportOpts = append(transportOpts, sbhttp.WithTimeout(cfg.Timeout))
	}
	if cfg.Proxy != "" {
		transportOpts = append(transportOpts, sbhttp.WithProxy(cfg.Proxy))
	}

	configured := []Option{
		WithCompression(cfg.GetCompression()),
		WithCodec(cd),
		WithTransport(sbhttp.NewTransport(transportOpts...)),
		WithLogger(logger),
		WithDefaultHeaders(cfg.Headers),
		WithRateLimit(cfg.RateLimit),
		WithOpaqueID(cfg.GetOpaqueID()),
	}

	return New(servers, append(configured, opts...)...), nil
}

// Servers returns the server list the client dispatches to.
func (c *Client) Servers() *ServerList {
	return c.servers
}

// Codec returns the codec used for payloads and results.
func (c *Client) Codec() codec.Codec {
	return c.codec
}

// Compression reports whether request entities are gzip-compressed.
func (c *Client) Compression() bool {
	return c.builder.Compression()
}

// Execute runs a to completion against the next server and returns the
// action's typed result. A transport failure is returned as a
// *http.TransportError and no result is produced.
func Execute[R any](ctx context.Context, c *Client, a action.Action[R]) (R, error) {
	var zero R

	url := sbhttp.JoinURL(c.servers.Next(), a.URI())

	payload, err := a.Data(c.codec)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrSerializePayload, err)
	}

	req, err := c.builder.Build(ctx, a.RestMethodName(), url, payload)
	if err != nil {
		return zero, err
	}

	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range a.Headers() {
		req.Header.Set(k, fmt.Sprint(v))
	}
	if c.opaqueID && req.Header.Get(OpaqueIDHeader) == "" {
		req.Header.Set(OpaqueIDHeader, uuid.NewString())
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return zero, fmt.Errorf("rate limit: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.transport.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.metrics.ObserveTransportError(req.Method, duration)
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("url", url),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return zero, &sbhttp.TransportError{Method: req.Method, URL: url, Err: err}
	}

	c.metrics.ObserveResponse(req.Method, resp.StatusCode, duration)
	c.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	resp, err = sbhttp.Normalize(req, resp)
	if err != nil {
		return zero, &sbhttp.TransportError{Method: req.Method, URL: url, Err: err}
	}
	return deserialize(c, req, resp, a)
}

func deserialize[R any](c *Client, req *http.Request, resp *http.Response, a action.Action[R]) (R, error) {
	var zero R

	body, err := sbhttp.ReadBody(resp)
	if err != nil {
		return zero, &sbhttp.TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	return a.CreateResult(body, resp.StatusCode, sbhttp.ReasonPhrase(resp), c.codec)
}

// ExecuteAsync exists for API parity and always fails with
// ErrUnsupportedAsync. Neither the transport nor handler is called.
func ExecuteAsync[R any](ctx context.Context, c *Client, a action.Action[R], handler func(R, error)) error {
	return ErrUnsupportedAsync
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	type idleCloser interface {
		CloseIdleConnections()
	}
	if ic, ok := c.transport.(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// IsTransportError reports whether err came from the transport rather than
// from the server's response.
func IsTransportError(err error) bool {
	var te *sbhttp.TransportError
	return errors.As(err, &te)
}
