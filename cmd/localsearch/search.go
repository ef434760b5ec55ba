package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/localsearch/internal/seed"
	localsearch "github.com/kailas-cloud/localsearch/pkg/sdk"
)

type searchFlags struct {
	seeds      []string
	index      string
	limit      uint32
	threshold  float64
	prefixOnly bool
	jsonOutput bool
}

type searchOutput struct {
	Index   string               `json:"index"`
	Status  localsearch.Status   `json:"status"`
	Results []localsearch.Result `json:"results"`
}

func newSearchCmd() *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search seed files without starting a server",
		Long: `Load one or more seed files into memory and run a single query.

Example:
  localsearch search --seed seeds/settings.yaml "wifi"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringArrayVarP(&flags.seeds, "seed", "s", nil, "Seed file to load (repeatable)")
	cmd.Flags().StringVarP(&flags.index, "index", "i", "", "Index to search (required when seeds fill several)")
	cmd.Flags().Uint32VarP(&flags.limit, "limit", "n", 10, "Maximum results, 0 for all")
	cmd.Flags().Float64Var(&flags.threshold, "threshold", localsearch.DefaultParams().RelevanceThreshold, "Relevance threshold")
	cmd.Flags().BoolVar(&flags.prefixOnly, "prefix-only", false, "Match query tokens as prefixes only")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Output results as JSON")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}

func runSearch(cmd *cobra.Command, flags *searchFlags, query string) error {
	ctx := cmd.Context()

	params := localsearch.DefaultParams()
	params.RelevanceThreshold = flags.threshold
	params.UsePrefixOnly = flags.prefixOnly

	indexes := localsearch.NewService(localsearch.WithSearchParams(params))
	if err := seed.NewLoader(indexes, localsearch.BackendLinearMap, zap.NewNop()).LoadAll(ctx, flags.seeds); err != nil {
		return err
	}

	id := flags.index
	if id == "" {
		ids := indexes.IDs()
		if len(ids) != 1 {
			return fmt.Errorf("seeds fill %d indexes %v, pick one with --index", len(ids), ids)
		}
		id = ids[0]
	}
	idx, err := indexes.Lookup(id)
	if err != nil {
		return err
	}

	st, results := idx.Find(ctx, query, flags.limit)
	out := cmd.OutOrStdout()

	if flags.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{Index: id, Status: st, Results: results})
	}

	if st != localsearch.StatusSuccess {
		_, err := fmt.Fprintf(out, "no search performed: %s\n", st)
		return err
	}
	if len(results) == 0 {
		_, err := fmt.Fprintln(out, "no results")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SCORE\tID")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%.3f\t%s\n", r.Score, r.ID)
	}
	return tw.Flush()
}
