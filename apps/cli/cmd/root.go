package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	sbhttp "github.com/abdul-hamid-achik/searchbox/packages/http"
	"github.com/abdul-hamid-achik/searchbox/packages/result"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag   string
	serverFlags  []string
	headerFlags  []string
	compressFlag bool
	verboseFlag  bool
	noColorFlag  bool
	outputFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "searchbox",
	Short: "A small client for document search REST APIs.",
	Long: `searchbox sends document and query actions to a search engine over
its REST API and prints the typed result.

Examples:
  searchbox index twitter tweet 1 --data '{"user":"kimchy"}'
  searchbox get twitter tweet 1
  searchbox search twitter --query user:kimchy
  searchbox mock --port 9200`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
	},
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", "", "Config file path (default: searchbox.yaml in the current directory)")
	pf.StringSliceVarP(&serverFlags, "server", "s", nil, "Server base URL, repeatable (env: SEARCHBOX_SERVERS)")
	pf.StringArrayVarP(&headerFlags, "header", "H", nil, `Default request header as "Name: value", repeatable`)
	pf.BoolVar(&compressFlag, "compress", false, "Gzip-compress request bodies (env: SEARCHBOX_COMPRESSION)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Log requests at debug level")
	pf.BoolVar(&noColorFlag, "no-color", getEnvBool("SEARCHBOX_NO_COLOR", false), "Disable colored output (env: SEARCHBOX_NO_COLOR)")
	pf.StringVarP(&outputFlag, "output", "o", "pretty", "Output format: pretty, json")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(mltCmd)
	rootCmd.AddCommand(deleteByQueryCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// errActionFailed is returned when the server answered but the result
// reports failure. The result itself has already been printed.
var errActionFailed = errors.New("action did not succeed")

func exitCode(err error) int {
	var (
		ue *usageError
		ce *configError
		te *sbhttp.TransportError
		de *result.DeserializationError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ue):
		return ExitUsageError
	case errors.As(err, &ce):
		return ExitConfigError
	case errors.As(err, &te):
		return ExitNetworkError
	case errors.As(err, &de):
		return ExitResponseError
	case errors.Is(err, sbhttp.ErrUnsupportedMethod):
		return ExitUsageError
	default:
		return ExitActionFailure
	}
}
