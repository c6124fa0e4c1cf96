// Package bench measures request latency by running one operation
// repeatedly from a fixed pool of workers, optionally paced to a target
// rate, and summarizes the run with HDR histogram percentiles.
package bench

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the settings of one benchmark run. The run ends after
// Requests operations or after Duration, whichever comes first; at least
// one of them must be set.
type Config struct {
	Requests    int
	Duration    time.Duration
	Concurrency int
	Rate        float64 // operations per second, 0 = as fast as possible
	Thresholds  Thresholds
}

// Thresholds defines pass/fail criteria for a run
type Thresholds struct {
	P50       time.Duration
	P95       time.Duration
	P99       time.Duration
	ErrorRate float64 // maximum error rate (0.0 - 1.0)
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Requests:    100,
		Concurrency: 4,
	}
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	var errs []error
	if c.Requests <= 0 && c.Duration <= 0 {
		errs = append(errs, errors.New("requests or duration must be positive"))
	}
	if c.Requests < 0 {
		errs = append(errs, errors.New("requests cannot be negative"))
	}
	if c.Duration < 0 {
		errs = append(errs, errors.New("duration cannot be negative"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.Rate < 0 {
		errs = append(errs, errors.New("rate cannot be negative"))
	}
	if c.Thresholds.ErrorRate < 0 || c.Thresholds.ErrorRate > 1 {
		errs = append(errs, errors.New("error rate threshold must be between 0 and 1"))
	}
	return errors.Join(errs...)
}
