package vaxstat

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	counts, err := agg.ComputeCounts(ctx)
//	if errors.Is(err, vaxstat.ErrConnectionFailed) {
//	    // The store could not be reached; nothing was computed
//	}
var (
	// ErrInvalidConfig indicates required configuration is missing or invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the store could not be reached or a query on it failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrLoadFailed indicates the bulk load or projection did not complete.
	// The target tables are left in an undefined state.
	ErrLoadFailed = errors.New("load failed")

	// ErrAggregationSkip marks a single dose tuple dropped from a summary.
	// It is reported through the Logger and never returned as a fatal error.
	ErrAggregationSkip = errors.New("aggregation skipped record")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadFailed
	}

	errStr := err.Error()

	// Cobra reports argument and flag misuse as plain errors
	if strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.Contains(errStr, "arg(s), received") {
		return ExitUsageError
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
