package http

import (
	"crypto/tls"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// Doer executes a single HTTP exchange. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

type transportConfig struct {
	timeout             time.Duration
	maxIdleConns        int
	maxIdleConnsPerHost int
	validateSSL         bool
	proxyURL            string
}

type TransportOption func(*transportConfig)

func WithTimeout(d time.Duration) TransportOption {
	return func(c *transportConfig) {
		c.timeout = d
	}
}

// WithMaxIdleConns sets the pool size and the per-host idle limit
func WithMaxIdleConns(total, perHost int) TransportOption {
	return func(c *transportConfig) {
		if total > 0 {
			c.maxIdleConns = total
		}
		if perHost > 0 {
			c.maxIdleConnsPerHost = perHost
		}
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) TransportOption {
	return func(c *transportConfig) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) TransportOption {
	return func(c *transportConfig) {
		c.proxyURL = proxyURL
	}
}

// NewTransport returns a pooled *http.Client. Redirects are not followed;
// the search API answers directly and a redirect would drop request bodies.
func NewTransport(opts ...TransportOption) *http.Client {
	cfg := &transportConfig{
		timeout:             DefaultTimeout,
		maxIdleConns:        DefaultMaxIdleConns,
		maxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		validateSSL:         true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.MaxIdleConns = cfg.maxIdleConns
	transport.MaxIdleConnsPerHost = cfg.maxIdleConnsPerHost
	transport.IdleConnTimeout = DefaultIdleConnTimeout

	// Configure TLS verification
	if !cfg.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	// Configure proxy if specified
	if cfg.proxyURL != "" {
		proxyURL, err := neturl.Parse(cfg.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
