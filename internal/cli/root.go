package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/vaxstat/internal/config"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// skipConfigAnnotation marks commands that run without a resolved configuration.
const skipConfigAnnotation = "vaxstat/skip-config"

var rootCmd = &cobra.Command{
	Use:   "vaxstat",
	Short: "Load ECDC vaccination exports into PostgreSQL and summarize doses",
	Long: `vaxstat loads a header-free ECDC vaccination CSV export into PostgreSQL,
derives a narrow dose table from it, and reports per-country dose totals and
per-vaccine percentages.

Every command that touches the database reads the connection string from the
CONNECTION_STRING environment variable (a .env file in the working directory
is loaded first). Optional defaults come from ./vaxstat.yaml.

Typical session:
  vaxstat load-data covid_data.csv
  vaxstat populate-vaccine-data
  vaxstat get-country-vaccine-counts

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (e.g. CONNECTION_STRING not set)
  11 - Database connection or query failed
  13 - Data load or projection failed`,
	SilenceUsage:      true,
	PersistentPreRunE: resolveConfig,
}

var rootFlags struct {
	verbose    bool
	configPath string
}

// resolved holds the configuration of the running invocation. It is set by
// resolveConfig before any command that needs it runs.
var resolved *config.Config

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", config.ProjectFileName,
		"Path to an optional project file with defaults")
}

// resolveConfig loads .env and the project file, then resolves the
// environment. A missing CONNECTION_STRING fails here, before any command
// touches the database.
func resolveConfig(cmd *cobra.Command, args []string) error {
	if skipsConfig(cmd) {
		return nil
	}

	_ = godotenv.Load()

	project, err := config.LoadProject(rootFlags.configPath)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("failed to load %s: %w", rootFlags.configPath, err)
	}

	cfg, err := config.Resolve(os.Getenv, project)
	if err != nil {
		return err
	}
	resolved = cfg
	return nil
}

func skipsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}

func resolvedConfig() (*config.Config, error) {
	if resolved == nil {
		return nil, fmt.Errorf("configuration not resolved: %w", vaxstat.ErrInvalidConfig)
	}
	return resolved, nil
}
