package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/searchbox/packages/action"
	"github.com/abdul-hamid-achik/searchbox/packages/bench"
	"github.com/abdul-hamid-achik/searchbox/packages/client"
)

var (
	benchRequestsFlag    int
	benchDurationFlag    time.Duration
	benchConcurrencyFlag int
	benchRateFlag        float64
	benchP95Flag         time.Duration
	benchP99Flag         time.Duration
	benchErrorRateFlag   float64
)

var errThresholdsFailed = errors.New("one or more thresholds failed")

var benchCmd = &cobra.Command{
	Use:   "bench [index...]",
	Short: "Measure search latency",
	Long: `Run the same search repeatedly and report latency percentiles.

A search that fails or returns an unsuccessful result counts as an error.

Examples:
  searchbox bench twitter -q user:kimchy --requests 1000 --concurrency 8
  searchbox bench --duration 30s --rate 50 --p95 100ms --max-error-rate 0.01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := parseQuery(queryFlag)
		if err != nil {
			return err
		}

		cfg := &bench.Config{
			Requests:    benchRequestsFlag,
			Duration:    benchDurationFlag,
			Concurrency: benchConcurrencyFlag,
			Rate:        benchRateFlag,
			Thresholds: bench.Thresholds{
				P95:       benchP95Flag,
				P99:       benchP99Flag,
				ErrorRate: benchErrorRateFlag,
			},
		}
		if cmd.Flags().Changed("duration") && !cmd.Flags().Changed("requests") {
			cfg.Requests = 0
		}
		if err := cfg.Validate(); err != nil {
			return &usageError{err: err}
		}

		c, cleanup, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		search := action.NewSearch(args, typesFlag, query)
		summary, err := bench.Run(ctx, cfg, func(ctx context.Context) error {
			res, err := client.Execute(ctx, c, search)
			if err != nil {
				return err
			}
			if !res.Succeeded {
				return fmt.Errorf("%d %s", res.StatusCode, res.ReasonPhrase)
			}
			return nil
		})
		if err != nil {
			return err
		}

		results := summary.EvaluateThresholds(cfg.Thresholds)
		printSummary(cmd.OutOrStdout(), summary, results)

		for _, r := range results {
			if !r.Passed {
				return errThresholdsFailed
			}
		}
		return nil
	},
}

func printSummary(w io.Writer, s *bench.Summary, results []bench.ThresholdResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s\n", bold("Summary"))
	fmt.Fprintf(w, "  Duration:  %s\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  Requests:  %d (%.1f/s)\n", s.Total, s.RPS)
	if s.ErrorCount > 0 {
		fmt.Fprintf(w, "  Errors:    %s\n", red(fmt.Sprintf("%d (%.2f%%)", s.ErrorCount, s.ErrorRate*100)))
	} else {
		fmt.Fprintf(w, "  Errors:    %s\n", green("0"))
	}

	fmt.Fprintf(w, "\n%s\n", bold("Latency"))
	fmt.Fprintf(w, "  min %s  mean %s  p50 %s  p95 %s  p99 %s  max %s\n",
		s.Min, s.Mean, s.P50, s.P95, s.P99, s.Max)

	if len(results) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", bold("Thresholds"))
	for _, r := range results {
		symbol := green("✓")
		if !r.Passed {
			symbol = red("✗")
		}
		fmt.Fprintf(w, "  %s %s: %s (expected %s)\n", symbol, r.Name, r.Actual, r.Expected)
	}
}

func init() {
	f := benchCmd.Flags()
	f.IntVarP(&benchRequestsFlag, "requests", "n", 100, "Number of searches to run")
	f.DurationVar(&benchDurationFlag, "duration", 0, "Run for this long instead of a fixed number of searches")
	f.IntVar(&benchConcurrencyFlag, "concurrency", 4, "Number of concurrent workers")
	f.Float64Var(&benchRateFlag, "rate", 0, "Target searches per second, 0 for unpaced")
	f.DurationVar(&benchP95Flag, "p95", 0, "Fail when p95 latency exceeds this")
	f.DurationVar(&benchP99Flag, "p99", 0, "Fail when p99 latency exceeds this")
	f.Float64Var(&benchErrorRateFlag, "max-error-rate", 0, "Fail when the error rate (0-1) exceeds this")
	f.StringSliceVarP(&typesFlag, "type", "t", nil, "Restrict to types, repeatable")
	f.StringVarP(&queryFlag, "query", "q", "", "Query as JSON or field:value")
}
