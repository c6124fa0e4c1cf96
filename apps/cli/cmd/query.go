package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/searchbox/packages/action"
	"github.com/abdul-hamid-achik/searchbox/packages/client"
	"github.com/abdul-hamid-achik/searchbox/packages/result"
)

var (
	typesFlag     []string
	queryFlag     string
	sizeFlag      int
	fromFlag      int
	mltFieldsFlag []string
)

var searchCmd = &cobra.Command{
	Use:   "search [index...]",
	Short: "Search one or more indices",
	Long: `Search documents. Without indices every index is searched.

The query is either a JSON body or the field:value shorthand for a term
query.

Examples:
  searchbox search twitter --query user:kimchy
  searchbox search twitter facebook -t tweet -q '{"query":{"match":{"message":"brown fox"}}}'
  searchbox search --size 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := parseQuery(queryFlag)
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

		res, err := client.Execute(ctx, c, action.NewSearch(args, typesFlag, query, pagingOptions(cmd)...))
		if err != nil {
			return err
		}
		return printHits(cmd, res)
	},
}

var countCmd = &cobra.Command{
	Use:   "count [index...]",
	Short: "Count documents matching a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := parseQuery(queryFlag)
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

		res, err := client.Execute(ctx, c, action.NewCount(args, typesFlag, query))
		if err != nil {
			return err
		}
		if outputFlag == "json" || !res.Succeeded {
			return printResult(cmd, res.Result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Count)
		return nil
	},
}

var mltCmd = &cobra.Command{
	Use:   "mlt <index> <type> <id>",
	Short: "Find documents similar to a given document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := parseQuery(queryFlag)
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

		opts := pagingOptions(cmd)
		if len(mltFieldsFlag) > 0 {
			opts = append(opts, action.WithParameter("mlt_fields", strings.Join(mltFieldsFlag, ",")))
		}

		res, err := client.Execute(ctx, c, action.NewMoreLikeThis(args[0], args[1], args[2], query, opts...))
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	},
}

var deleteByQueryCmd = &cobra.Command{
	Use:   "delete-by-query [index...]",
	Short: "Delete every document matching a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryFlag == "" {
			return &usageError{err: fmt.Errorf("--query is required")}
		}
		query, err := parseQuery(queryFlag)
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

		res, err := client.Execute(ctx, c, action.NewDeleteByQuery(args, typesFlag, query))
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	},
}

func pagingOptions(cmd *cobra.Command) []action.Option {
	var opts []action.Option
	if cmd.Flags().Changed("size") {
		opts = append(opts, action.WithParameter("size", strconv.Itoa(sizeFlag)))
	}
	if cmd.Flags().Changed("from") {
		opts = append(opts, action.WithParameter("from", strconv.Itoa(fromFlag)))
	}
	return opts
}

// printHits lists search hits one per line in pretty mode.
func printHits(cmd *cobra.Command, res *result.SearchResult) error {
	if outputFlag == "json" || !res.Succeeded {
		return printResult(cmd, res.Result)
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(out, "%s\n", bold(fmt.Sprintf("%d hit(s), max score %.2f", res.Total, res.MaxScore)))
	for _, hit := range res.Hits {
		fmt.Fprintf(out, "  %s %s/%s/%s %s\n", cyan(fmt.Sprintf("%.2f", hit.Score)), hit.Index, hit.Type, hit.ID, hit.Source)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, countCmd, deleteByQueryCmd} {
		c.Flags().StringSliceVarP(&typesFlag, "type", "t", nil, "Restrict to types, repeatable")
	}
	for _, c := range []*cobra.Command{searchCmd, countCmd, mltCmd, deleteByQueryCmd} {
		c.Flags().StringVarP(&queryFlag, "query", "q", "", "Query as JSON or field:value")
	}
	for _, c := range []*cobra.Command{searchCmd, mltCmd} {
		c.Flags().IntVar(&sizeFlag, "size", 10, "Number of hits to return")
		c.Flags().IntVar(&fromFlag, "from", 0, "Offset of the first hit")
	}
	mltCmd.Flags().StringSliceVar(&mltFieldsFlag, "fields", nil, "Fields used to find similar documents")
}
