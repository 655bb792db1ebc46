package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vvka-141/vaxstat/internal/aggregate"
	"github.com/vvka-141/vaxstat/internal/output"
)

var countsCmd = &cobra.Command{
	Use:   "get-country-vaccine-counts",
	Short: "Print dose totals per country and vaccine",
	Long: `Get-country-vaccine-counts sums the doses of every distinct
(doses, country, vaccine) tuple in vaccine_data and prints, per country, the
total of each vaccine plus total_doses.

Codes are shown by display name; unknown codes are shown as-is.

Examples:
  vaxstat get-country-vaccine-counts
  vaxstat get-country-vaccine-counts -o table`,
	Args:              cobra.NoArgs,
	ValidArgsFunction: cobra.NoFileCompletions,
	RunE:              runCounts,
}

var percentagesCmd = &cobra.Command{
	Use:   "get-country-vaccine-percentages",
	Short: "Print each vaccine's share of a country's doses",
	Long: `Get-country-vaccine-percentages prints, per country, each vaccine's share
of the country's doses as a percentage rounded to two decimals.

A country with no doses at all keeps its zero counts.

Examples:
  vaxstat get-country-vaccine-percentages
  vaxstat get-country-vaccine-percentages -o yaml`,
	Args:              cobra.NoArgs,
	ValidArgsFunction: cobra.NoFileCompletions,
	RunE:              runPercentages,
}

var queryFlags struct {
	output string
}

func init() {
	for _, c := range []*cobra.Command{countsCmd, percentagesCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&queryFlags.output, "output", "o", "",
			"Output format: json|yaml|table (default: json, or output in vaxstat.yaml)")
		_ = c.RegisterFlagCompletionFunc("output", completeOutputFormats)
	}
}

// renderer resolves the output format before any connection is opened.
func renderer() (output.Renderer, error) {
	cfg, err := resolvedConfig()
	if err != nil {
		return nil, err
	}
	format := cfg.Output
	if queryFlags.output != "" {
		format = queryFlags.output
	}
	return output.New(format)
}

func runCounts(cmd *cobra.Command, args []string) error {
	r, err := renderer()
	if err != nil {
		return err
	}
	return withSession(cmd, func(ctx context.Context, s *session) error {
		agg := aggregate.New(s.store, s.logger)
		counts, err := agg.ComputeCounts(ctx)
		if err != nil {
			return err
		}
		reportSkipped(s, agg)
		return r.Counts(cmd.OutOrStdout(), counts)
	})
}

func runPercentages(cmd *cobra.Command, args []string) error {
	r, err := renderer()
	if err != nil {
		return err
	}
	return withSession(cmd, func(ctx context.Context, s *session) error {
		agg := aggregate.New(s.store, s.logger)
		pct, err := agg.ComputePercentages(ctx)
		if err != nil {
			return err
		}
		reportSkipped(s, agg)
		return r.Percentages(cmd.OutOrStdout(), pct)
	})
}

func reportSkipped(s *session, agg *aggregate.Aggregator) {
	if n := agg.Skipped(); n > 0 {
		s.logger.Info("%d record(s) skipped; see errors above", n)
	}
}
