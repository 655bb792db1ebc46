package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

var populateCmd = &cobra.Command{
	Use:   "populate-vaccine-data",
	Short: "Derive vaccine_data from raw_data",
	Long: `Populate-vaccine-data copies the dose count, reporting country and vaccine
code of every raw_data row into vaccine_data.

By default rows are appended, so running the command twice doubles every
count. Use --replace (or projection: replace in vaxstat.yaml) to empty
vaccine_data first, in the same transaction.

Examples:
  vaxstat populate-vaccine-data
  vaxstat populate-vaccine-data --replace`,
	Args:              cobra.NoArgs,
	ValidArgsFunction: cobra.NoFileCompletions,
	RunE:              runPopulate,
}

var populateFlags struct {
	replace bool
}

func init() {
	rootCmd.AddCommand(populateCmd)

	populateCmd.Flags().BoolVar(&populateFlags.replace, "replace", false,
		"Truncate vaccine_data before inserting (idempotent)")
}

func runPopulate(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		mode := s.cfg.Projection
		if populateFlags.replace {
			mode = vaxstat.ProjectReplace
		}

		rows, err := s.store.ProjectVaccineTable(ctx, mode)
		if err != nil {
			return err
		}
		s.logger.Info("Inserted %d rows into %s (%s)", rows, vaxstat.VaccineTable, mode)
		return nil
	})
}
