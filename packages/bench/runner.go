package bench

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Operation is one unit of benchmarked work. A non-nil error counts the
// operation as failed.
type Operation func(ctx context.Context) error

// Run executes op according to cfg and returns the summary. Cancelling ctx
// stops the run early; the summary covers what completed.
func Run(ctx context.Context, cfg *Config, op Operation) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	var limiter *rate.Limiter
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}

	// Each token on the channel is one operation to run. Without a request
	// budget the feeder runs until the context ends.
	jobs := make(chan struct{})
	go func() {
		defer close(jobs)
		for i := 0; cfg.Requests <= 0 || i < cfg.Requests; i++ {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}
			select {
			case jobs <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	m := NewMetrics()
	m.Start()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				start := time.Now()
				err := op(ctx)
				if ctx.Err() != nil && err != nil {
					// interrupted by the deadline
					return
				}
				m.Record(time.Since(start), err)
			}
		}()
	}
	wg.Wait()
	m.Stop()

	return m.GetSummary(), nil
}
