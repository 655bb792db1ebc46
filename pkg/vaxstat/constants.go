package vaxstat

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Missing or invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitLoadFailed      = 13 // Bulk load or projection failed
)

const (
	// ConnectionStringEnv is the environment variable that must hold the
	// PostgreSQL connection string before any store operation runs.
	ConnectionStringEnv = "CONNECTION_STRING"

	// ConnInfoFile is the file written by the write-config command.
	ConnInfoFile = ".conninfo"

	// DefaultDataFile is the CSV loaded when load-data is given no filename.
	DefaultDataFile = "covid_data.csv"

	// RawTable holds CSV rows verbatim.
	RawTable = "raw_data"

	// VaccineTable holds the (doses, country, vaccine) projection of RawTable.
	VaccineTable = "vaccine_data"

	// TotalDosesKey is the reserved per-country accumulator holding the sum of
	// every vaccine accumulator for that country.
	TotalDosesKey = "total_doses"

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultConnectRetries is the number of extra connection attempts made
	// after a transient failure. Operations are not retried unless configured.
	DefaultConnectRetries = 0
)
