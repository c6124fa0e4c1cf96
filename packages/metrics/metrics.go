// Package metrics exposes Prometheus collectors for dispatched requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records one observation per completed or failed exchange.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TransportErrors *prometheus.CounterVec
}

// NewCollector registers the searchbox collectors with reg. A nil reg
// leaves them unregistered, which is useful in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchbox_requests_total",
				Help: "Total number of search API requests by method and status",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "searchbox_request_duration_seconds",
				Help:    "Search API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		TransportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchbox_transport_errors_total",
				Help: "Total number of requests that failed before a response arrived",
			},
			[]string{"method"},
		),
	}
}

// ObserveResponse records a completed exchange.
func (c *Collector) ObserveResponse(method string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.RequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveTransportError records an exchange that failed at the transport.
func (c *Collector) ObserveTransportError(method string, duration time.Duration) {
	if c == nil {
		return
	}
	c.TransportErrors.WithLabelValues(method).Inc()
	c.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
