// Package config resolves vaxstat settings from the environment and an
// optional vaxstat.yaml project file. Settings are resolved once at process
// entry and passed to components by value; nothing reads the environment later.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// ErrConfigNotFound is returned when the project file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectFileName is the default project file looked up in the working directory.
const ProjectFileName = "vaxstat.yaml"

// Environment variables read by Resolve, besides vaxstat.ConnectionStringEnv.
const (
	EnvAuthMethod        = "VAXSTAT_AUTH_METHOD"
	EnvAWSRegion         = "AWS_REGION"
	EnvAzureTenantID     = "AZURE_TENANT_ID"
	EnvAzureClientID     = "AZURE_CLIENT_ID"
	EnvAzureClientSecret = "AZURE_CLIENT_SECRET"
	EnvGoogleInstance    = "VAXSTAT_GOOGLE_INSTANCE"
	EnvConnectRetries    = "VAXSTAT_CONNECT_RETRIES"
)

// Output formats accepted by the query commands.
const (
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// AuthConfig selects a cloud authentication method. Secrets are only read
// from the environment.
type AuthConfig struct {
	Method         string `yaml:"method"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// ProjectConfig is the on-disk shape of vaxstat.yaml.
type ProjectConfig struct {
	DataFile   string     `yaml:"data_file"`
	Projection string     `yaml:"projection"`
	Output     string     `yaml:"output"`
	Timeout    string     `yaml:"timeout"`
	Auth       AuthConfig `yaml:"auth"`

	// ConnectRetries enables retrying transient connection failures.
	ConnectRetries *int `yaml:"connect_retries,omitempty"`
}

// LoadProject reads a project file. A missing file yields ErrConfigNotFound.
func LoadProject(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, vaxstat.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Config is the fully resolved configuration of one invocation.
type Config struct {
	Connection vaxstat.ConnectionConfig
	DataFile   string
	Projection vaxstat.ProjectionMode
	Output     string

	// Timeout bounds a whole command. Zero means no limit.
	Timeout time.Duration
}

// Resolve merges the environment (looked up through getenv) over project,
// which may be nil, and validates the result. A missing connection string is
// reported as vaxstat.ErrInvalidConfig.
func Resolve(getenv func(string) string, project *ProjectConfig) (*Config, error) {
	if project == nil {
		project = &ProjectConfig{}
	}

	cfg := &Config{
		DataFile: firstNonEmpty(project.DataFile, vaxstat.DefaultDataFile),
		Output:   firstNonEmpty(strings.ToLower(project.Output), OutputJSON),
	}

	var errs []error

	mode, err := vaxstat.ParseProjectionMode(project.Projection)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Projection = mode

	if err := ValidateOutput(cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if project.Timeout != "" {
		d, err := time.ParseDuration(project.Timeout)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("invalid timeout %q: %w", project.Timeout, vaxstat.ErrInvalidConfig))
		}
		cfg.Timeout = d
	}

	method, err := vaxstat.ParseAuthMethod(firstNonEmpty(getenv(EnvAuthMethod), project.Auth.Method))
	if err != nil {
		errs = append(errs, err)
	}

	retries := vaxstat.DefaultConnectRetries
	if project.ConnectRetries != nil {
		retries = *project.ConnectRetries
	}
	if v := getenv(EnvConnectRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: %w", EnvConnectRetries, v, vaxstat.ErrInvalidConfig))
		}
		retries = n
	}

	cfg.Connection = vaxstat.ConnectionConfig{
		ConnectionString:  strings.TrimSpace(getenv(vaxstat.ConnectionStringEnv)),
		AuthMethod:        method,
		AWSRegion:         firstNonEmpty(getenv(EnvAWSRegion), project.Auth.AWSRegion),
		AzureTenantID:     firstNonEmpty(getenv(EnvAzureTenantID), project.Auth.AzureTenantID),
		AzureClientID:     firstNonEmpty(getenv(EnvAzureClientID), project.Auth.AzureClientID),
		AzureClientSecret: getenv(EnvAzureClientSecret),
		GoogleInstance:    firstNonEmpty(getenv(EnvGoogleInstance), project.Auth.GoogleInstance),
		ConnectRetries:    retries,
	}
	if err := cfg.Connection.Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateOutput checks that format is a supported output format.
func ValidateOutput(format string) error {
	switch format {
	case OutputJSON, OutputYAML, OutputTable:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml or table): %w", format, vaxstat.ErrInvalidConfig)
	}
}

// WriteConnInfo stores connString verbatim at path, readable by the owner only.
func WriteConnInfo(path, connString string) error {
	if err := os.WriteFile(path, []byte(connString), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
