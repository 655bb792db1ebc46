package vaxstat

import (
	"errors"
	"fmt"
	"strings"
)

// DoseRecord is one (doses received, reporting country, vaccine) tuple from
// the vaccine table. DosesReceived is nil when the source column was NULL.
type DoseRecord struct {
	DosesReceived *int64
	CountryCode   string
	VaccineCode   string
}

// Doses returns the dose count with NULL coerced to zero.
func (r DoseRecord) Doses() int64 {
	if r.DosesReceived == nil {
		return 0
	}
	return *r.DosesReceived
}

// Counts maps a country display name to its per-vaccine dose accumulators.
// Each inner map also carries TotalDosesKey.
type Counts map[string]map[string]int64

// Percentages maps a country display name to each vaccine's share of the
// country's doses, rounded to two decimals. TotalDosesKey is never present.
type Percentages map[string]map[string]float64

// ProjectionMode selects how the vaccine table is populated from the raw table.
type ProjectionMode int

const (
	// ProjectAppend inserts the projection on top of existing rows.
	// Repeated calls duplicate rows.
	ProjectAppend ProjectionMode = iota

	// ProjectReplace truncates the vaccine table before inserting, in one transaction.
	ProjectReplace
)

// String returns the configuration name of the mode.
func (m ProjectionMode) String() string {
	switch m {
	case ProjectAppend:
		return "append"
	case ProjectReplace:
		return "replace"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ParseProjectionMode converts a configuration value into a ProjectionMode.
// An empty string selects ProjectAppend.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "append":
		return ProjectAppend, nil
	case "replace":
		return ProjectReplace, nil
	default:
		return ProjectAppend, fmt.Errorf("unknown projection mode %q (want append or replace): %w", s, ErrInvalidConfig)
	}
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Credentials from the connection string
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod converts a configuration value such as "aws" or "azure"
// into an AuthMethod. An empty string selects AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam", "gcp":
		return AuthMethodGoogleIAM, nil
	case "azure", "azure-entra", "entra":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}

// ConnectionConfig holds everything a Connector needs to reach the store.
type ConnectionConfig struct {
	// ConnectionString is a libpq URI or keyword/value string.
	ConnectionString string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// Azure Entra ID parameters. If all three are set, Service Principal
	// authentication is used; otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance).
	GoogleInstance string

	// ConnectRetries is how many times a transient connection failure is
	// retried with backoff. Zero fails on the first error.
	ConnectRetries int
}

// Validate checks that the configuration is usable for the selected AuthMethod.
// It returns a multi-error if multiple validation failures occur.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("%s is not set: %w", ConnectionStringEnv, ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v: %w", c.AuthMethod, ErrUnsupportedAuthMethod))
	}

	if c.ConnectRetries < 0 {
		errs = append(errs, fmt.Errorf("connect retries must not be negative, got %d: %w", c.ConnectRetries, ErrInvalidConfig))
	}

	if c.AuthMethod == AuthMethodAWSIAM && c.AWSRegion == "" {
		errs = append(errs, fmt.Errorf("AWS IAM auth requires a region (set AWS_REGION): %w", ErrInvalidConfig))
	}

	if c.AuthMethod == AuthMethodGoogleIAM && c.GoogleInstance == "" {
		errs = append(errs, fmt.Errorf("Google Cloud SQL IAM auth requires an instance (set VAXSTAT_GOOGLE_INSTANCE): %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
