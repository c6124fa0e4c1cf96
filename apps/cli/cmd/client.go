package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/searchbox/packages/client"
	"github.com/abdul-hamid-achik/searchbox/packages/core/config"
	"github.com/abdul-hamid-achik/searchbox/packages/core/logging"
	"github.com/abdul-hamid-achik/searchbox/packages/result"
)

// loadConfig reads the config file, environment overrides and global flags,
// in that order of increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, &configError{err: err}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, &configError{err: err}
	}

	flags := &config.Config{Servers: serverFlags}
	if cmd.Flags().Changed("compress") {
		flags.Compression = config.BoolPtr(compressFlag)
	}
	if len(headerFlags) > 0 {
		flags.Headers = make(map[string]string, len(headerFlags))
		for _, h := range headerFlags {
			name, value, ok := strings.Cut(h, ":")
			if !ok || strings.TrimSpace(name) == "" {
				return nil, &usageError{err: fmt.Errorf("invalid header %q, expected \"Name: value\"", h)}
			}
			flags.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}
	if verboseFlag {
		flags.Log.Level = "debug"
	}
	cfg = cfg.Merge(flags)

	if err := cfg.Validate(); err != nil {
		return nil, &configError{err: err}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, &configError{err: fmt.Errorf("invalid log level: %w", err)}
	}
	return logger, nil
}

// newClient builds a client from the merged configuration. The returned
// cleanup closes idle connections and flushes the logger.
func newClient(cmd *cobra.Command) (*client.Client, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	c, err := client.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, nil, &configError{err: err}
	}

	cleanup := func() {
		c.Close()
		_ = logger.Sync()
	}
	return c, cleanup, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// printResult writes the status line and body of r and turns an
// unsuccessful result into errActionFailed.
func printResult(cmd *cobra.Command, r *result.Result) error {
	out := cmd.OutOrStdout()

	if outputFlag == "json" {
		if r.JSONString != "" {
			fmt.Fprintln(out, r.JSONString)
		}
	} else {
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		bold := color.New(color.Bold).SprintFunc()

		status := fmt.Sprintf("%d %s", r.StatusCode, r.ReasonPhrase)
		if r.Succeeded {
			fmt.Fprintf(out, "%s %s\n", green("✓"), bold(status))
		} else {
			fmt.Fprintf(out, "%s %s\n", red("✗"), bold(status))
			if r.ErrorMessage != "" {
				fmt.Fprintf(out, "  %s %s\n", red("→"), r.ErrorMessage)
			}
		}
		if r.HasBody() {
			fmt.Fprintln(out, prettyJSON(r.JSONString))
		}
	}

	if !r.Succeeded {
		return errActionFailed
	}
	return nil
}

func prettyJSON(s string) string {
	return strings.TrimRight(gjson.Get(s, "@pretty").Raw, "\n")
}

// parseQuery accepts a JSON query body or the "field:value" shorthand for a
// term query. An empty string means no body.
func parseQuery(q string) (any, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	if strings.HasPrefix(q, "{") {
		if !gjson.Valid(q) {
			return nil, &usageError{err: fmt.Errorf("query is not valid JSON")}
		}
		return q, nil
	}

	field, value, ok := strings.Cut(q, ":")
	if !ok || field == "" {
		return nil, &usageError{err: fmt.Errorf("invalid query %q, expected JSON or field:value", q)}
	}
	return map[string]any{
		"query": map[string]any{
			"term": map[string]any{field: value},
		},
	}, nil
}

// readData returns the document body from --data, --file or stdin ("-").
func readData(cmd *cobra.Command, data, file string) (string, error) {
	switch {
	case data != "" && file != "":
		return "", &usageError{err: fmt.Errorf("--data and --file are mutually exclusive")}
	case data != "":
		return data, nil
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(b), nil
	default:
		return "", &usageError{err: fmt.Errorf("a document is required: use --data or --file")}
	}
}
