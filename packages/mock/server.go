// Package mock provides an in-memory search engine that speaks enough of the
// document and search REST API to exercise a client end to end.
package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/searchbox/packages/codec"
	sbhttp "github.com/abdul-hamid-achik/searchbox/packages/http"
)

// RecordedRequest is a request as the mock received it, with any gzip
// entity already decoded.
type RecordedRequest struct {
	Method     string
	Path       string
	RawQuery   string
	Header     http.Header
	Body       []byte
	Compressed bool
}

// Server is a mock search engine backed by a Store
type Server struct {
	router *Router
	store  *Store
	codec  codec.Codec
	port   int
	delay  time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	requests []RecordedRequest
}

// Option is a functional option for Server
type Option func(*Server)

// WithPort sets the server port
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDelay adds a delay to all responses
func WithDelay(delay time.Duration) Option {
	return func(s *Server) {
		s.delay = delay
	}
}

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new mock server
func NewServer(opts ...Option) *Server {
	s := &Server{
		router: NewRouter(),
		store:  NewStore(),
		codec:  codec.Default(),
		port:   9200,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// Store returns the document store behind the server
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the server as an http.Handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleRequest)
}

// Requests returns a copy of every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Start serves on the configured port until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)

	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("mock server starting",
		zap.String("url", fmt.Sprintf("http://localhost:%d", s.port)),
		zap.Int("routes", len(s.router.Routes())),
	)
	for _, route := range s.router.Routes() {
		s.logger.Debug("route", zap.String("method", route.Method), zap.String("pattern", route.PathPattern), zap.String("name", route.Name))
	}

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	body, compressed, err := readEntity(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}
	s.record(r, body, compressed)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	route, params := s.router.Match(r.Method, r.URL.Path)
	if route == nil {
		s.writeError(rec, http.StatusBadRequest, fmt.Sprintf("No handler found for uri [%s] and method [%s]", r.URL.Path, r.Method))
	} else {
		route.Handler(rec, r, body, params)
	}

	s.logger.Debug("mock request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Bool("gzip", compressed),
		zap.Duration("duration", time.Since(start)),
	)
}

func readEntity(r *http.Request) ([]byte, bool, error) {
	if r.Body == nil {
		return nil, false, nil
	}
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false, err
	}
	if !strings.EqualFold(r.Header.Get("Content-Encoding"), sbhttp.EncodingGzip) {
		return data, false, nil
	}

	decoded, err := sbhttp.Decompress(data)
	if err != nil {
		return nil, true, err
	}
	return decoded, true, nil
}

func (s *Server) record(r *http.Request, body []byte, compressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, RecordedRequest{
		Method:     r.Method,
		Path:       r.URL.Path,
		RawQuery:   r.URL.RawQuery,
		Header:     r.Header.Clone(),
		Body:       body,
		Compressed: compressed,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := s.codec.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, reason string) {
	s.writeJSON(w, status, errorResponse{Error: reason, Status: status})
}
