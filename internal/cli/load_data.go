package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var loadDataCmd = &cobra.Command{
	Use:   "load-data [filename]",
	Short: "Load a vaccination CSV export into raw_data",
	Long: `Load-data prepares the database and bulk-loads an ECDC vaccination export.

The load-data command:
1. Creates the postgis extension if missing
2. Drops and recreates the raw_data and vaccine_data tables
3. Copies the header-free CSV file into raw_data in one transaction

Existing data in both tables is discarded. A file PostgreSQL cannot parse
leaves raw_data empty.

Arguments:
  filename    CSV file to load (default: covid_data.csv, or data_file in vaxstat.yaml)

Examples:
  vaxstat load-data
  vaxstat load-data exports/2021-w52.csv`,
	Args:              OptionalArg("filename"),
	ValidArgsFunction: completeCSVFiles,
	RunE:              runLoadData,
}

func init() {
	rootCmd.AddCommand(loadDataCmd)
}

func runLoadData(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		path := s.cfg.DataFile
		if len(args) == 1 {
			path = args[0]
		}

		if err := s.store.EnsureExtensions(ctx); err != nil {
			return err
		}
		if err := s.store.ResetSchema(ctx); err != nil {
			return err
		}
		rows, err := s.store.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		s.logger.Info("Loaded %d rows from %s", rows, path)
		return nil
	})
}
