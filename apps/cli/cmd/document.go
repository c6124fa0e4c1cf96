package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/searchbox/packages/action"
	"github.com/abdul-hamid-achik/searchbox/packages/client"
)

var (
	routingFlag   string
	refreshFlag   bool
	indexDataFlag string
	indexFileFlag string
)

var getCmd = &cobra.Command{
	Use:   "get <index> <type> <id>",
	Short: "Fetch a document by id",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		res, err := client.Execute(ctx, c, action.NewGet(args[0], args[1], args[2], documentOptions()...))
		if err != nil {
			return err
		}
		return printResult(cmd, res.Result)
	},
}

var indexCmd = &cobra.Command{
	Use:   "index <index> <type> [id]",
	Short: "Store a document",
	Long: `Store a JSON document. Without an id the server assigns one.

Examples:
  searchbox index twitter tweet 1 --data '{"user":"kimchy"}'
  searchbox index twitter tweet --file tweet.json
  cat tweet.json | searchbox index twitter tweet 1 --file -`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readData(cmd, indexDataFlag, indexFileFlag)
		if err != nil {
			return err
		}

		c, cleanup, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		var id string
		if len(args) == 3 {
			id = args[2]
		}
		res, err := client.Execute(ctx, c, action.NewIndex(args[0], args[1], id, body, documentOptions()...))
		if err != nil {
			return err
		}
		return printResult(cmd, res.Result)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <index> <type> <id>",
	Short: "Delete a document by id",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		res, err := client.Execute(ctx, c, action.NewDelete(args[0], args[1], args[2], documentOptions()...))
		if err != nil {
			return err
		}
		return printResult(cmd, res.Result)
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <index> [type] [id]",
	Short: "Check whether an index, type or document exists",
	Long: `Check existence with a HEAD request. Exits with status 1 when the
target does not exist.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		parts := make([]string, 3)
		copy(parts, args)
		res, err := client.Execute(ctx, c, action.NewExists(parts[0], parts[1], parts[2]))
		if err != nil {
			return err
		}

		if outputFlag == "json" || (!res.Found && res.StatusCode != 404) {
			return printResult(cmd, res.Result)
		}

		out := cmd.OutOrStdout()
		if res.Found {
			fmt.Fprintf(out, "%s found\n", color.New(color.FgGreen).Sprint("✓"))
			return nil
		}
		fmt.Fprintf(out, "%s not found\n", color.New(color.FgYellow).Sprint("✗"))
		return errActionFailed
	},
}

func documentOptions() []action.Option {
	var opts []action.Option
	if routingFlag != "" {
		opts = append(opts, action.WithRouting(routingFlag))
	}
	if refreshFlag {
		opts = append(opts, action.WithRefresh(true))
	}
	return opts
}

func init() {
	for _, c := range []*cobra.Command{getCmd, indexCmd, deleteCmd} {
		c.Flags().StringVar(&routingFlag, "routing", "", "Routing value")
	}
	for _, c := range []*cobra.Command{indexCmd, deleteCmd} {
		c.Flags().BoolVar(&refreshFlag, "refresh", false, "Refresh affected shards after the write")
	}

	indexCmd.Flags().StringVarP(&indexDataFlag, "data", "d", "", "Document JSON")
	indexCmd.Flags().StringVarP(&indexFileFlag, "file", "f", "", `Read the document from a file, "-" for stdin`)
}
