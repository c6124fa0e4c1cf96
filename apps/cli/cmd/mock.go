package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/searchbox/packages/core/logging"
	"github.com/abdul-hamid-achik/searchbox/packages/mock"
)

var (
	mockPortFlag  int
	mockDelayFlag string
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Start an in-memory search engine",
	Long: `Start an HTTP server that stores documents in memory and answers the
document, search, count, more-like-this and delete-by-query endpoints.

The mock server:
- Accepts gzip-compressed request bodies
- Supports term, match, ids and match_all queries
- Can add artificial delays to simulate network latency

Examples:
  searchbox mock
  searchbox mock --port 9201
  searchbox mock --delay 100ms --verbose`,
	Args: cobra.NoArgs,
	RunE: mockCommand,
}

func init() {
	mockCmd.Flags().IntVarP(&mockPortFlag, "port", "p", 9200, "Port to run the mock server on")
	mockCmd.Flags().StringVarP(&mockDelayFlag, "delay", "d", "0", "Delay to add to all responses (e.g., 100ms, 1s)")
}

func mockCommand(cmd *cobra.Command, args []string) error {
	var delay time.Duration
	if mockDelayFlag != "0" {
		var err error
		delay, err = time.ParseDuration(mockDelayFlag)
		if err != nil {
			return &usageError{err: fmt.Errorf("invalid delay value %q: %w", mockDelayFlag, err)}
		}
	}

	level := "info"
	if verboseFlag {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Development: true})
	if err != nil {
		return &configError{err: err}
	}
	defer func() { _ = logger.Sync() }()

	server := mock.NewServer(
		mock.WithPort(mockPortFlag),
		mock.WithDelay(delay),
		mock.WithLogger(logger),
	)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	if err := server.Start(ctx); err != nil {
		return err
	}
	logger.Info("mock server stopped", zap.Int("documents", server.Store().Len()))
	return nil
}
