package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/vaxstat/internal/retry"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// DefaultConnectTimeout bounds a single connection attempt when the
// connection string does not set connect_timeout.
const DefaultConnectTimeout = 15 * time.Second

// ParseConnConfig parses a libpq URI or keyword/value connection string.
func ParseConnConfig(connStr string) (*pgx.ConnConfig, error) {
	if strings.TrimSpace(connStr) == "" {
		return nil, fmt.Errorf("%s is empty: %w", vaxstat.ConnectionStringEnv, vaxstat.ErrInvalidConfig)
	}
	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w: %w", vaxstat.ConnectionStringEnv, vaxstat.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Target returns a password-free "user@host:port/database" description of
// connStr for log output.
func Target(connStr string) string {
	cfg, err := ParseConnConfig(connStr)
	if err != nil {
		return "<invalid connection string>"
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}

func configureConn(cfg *pgx.ConnConfig, logger vaxstat.Logger) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	cfg.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("%s: %s", notice.Severity, notice.Message)
	}
}

func newRetryExecutor(retries int, logger vaxstat.Logger) *retry.Executor {
	strategy := retry.NewExponentialBackoff(retries,
		retry.WithInitialDelay(vaxstat.DefaultRetryInitialDelay),
		retry.WithMaxDelay(vaxstat.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Connection attempt %d failed, retrying in %v: %v", attempt+1, delay.Round(time.Millisecond), err)
		})
}

// connect opens cfg with retry and verifies the session with a ping.
func connect(ctx context.Context, executor *retry.Executor, cfg *pgx.ConnConfig) (*pgx.Conn, error) {
	var conn *pgx.Conn

	err := executor.Execute(ctx, func(ctx context.Context) error {
		c, err := pgx.ConnectConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err := c.Ping(ctx); err != nil {
			c.Close(ctx) //nolint:errcheck
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}

	return conn, nil
}

// StandardConnector connects with the credentials embedded in the connection
// string, retrying transient failures when ConnectRetries is set.
type StandardConnector struct {
	config        *vaxstat.ConnectionConfig
	logger        vaxstat.Logger
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a new StandardConnector.
func NewStandardConnector(config *vaxstat.ConnectionConfig, logger vaxstat.Logger) *StandardConnector {
	return &StandardConnector{
		config:        config,
		logger:        logger,
		retryExecutor: newRetryExecutor(config.ConnectRetries, logger),
	}
}

// Connect opens a new connection. The caller must close it.
func (c *StandardConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	cfg, err := ParseConnConfig(c.config.ConnectionString)
	if err != nil {
		return nil, err
	}
	configureConn(cfg, c.logger)

	c.logger.Verbose("Connecting to %s", Target(c.config.ConnectionString))
	return connect(ctx, c.retryExecutor, cfg)
}

// NewConnector creates the Connector matching config.AuthMethod.
func NewConnector(config *vaxstat.ConnectionConfig, logger vaxstat.Logger) (vaxstat.Connector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.AuthMethod {
	case vaxstat.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case vaxstat.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case vaxstat.AuthMethodGoogleIAM:
		return NewGoogleCloudSQLConnector(config, logger), nil
	case vaxstat.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, vaxstat.ErrUnsupportedAuthMethod)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *vaxstat.ConnectionConfig, logger vaxstat.Logger) (vaxstat.Connector, error) {
	cfg, err := ParseConnConfig(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, cfg.User)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w: %w", vaxstat.ErrInvalidConfig, err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newAzureConnector uses Service Principal credentials when tenant, client and
// secret are all configured, and the DefaultAzureCredential chain otherwise.
func newAzureConnector(config *vaxstat.ConnectionConfig, logger vaxstat.Logger) (vaxstat.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure token provider: %w: %w", vaxstat.ErrInvalidConfig, err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}

// wrapConnectionError adds actionable guidance to raw pgx connection errors.
// The result always wraps vaxstat.ErrConnectionFailed.
func wrapConnectionError(err error, host string, port uint16, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	var summary, causes string
	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		summary = "connection refused to " + addr
		causes = fmt.Sprintf(`  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in %s`, host, port, vaxstat.ConnectionStringEnv)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		summary = fmt.Sprintf("cannot resolve host %q", host)
		causes = `  - Hostname is misspelled
  - DNS is not configured or reachable`

	case strings.Contains(errStr, "password authentication failed"):
		summary = fmt.Sprintf("password authentication failed for database %q", database)
		causes = fmt.Sprintf(`  - Wrong user or password in %s
  - For IAM auth, the database user is not mapped to the cloud identity`, vaxstat.ConnectionStringEnv)

	case strings.Contains(errStr, "does not exist"):
		summary = fmt.Sprintf("database %q does not exist", database)
		causes = fmt.Sprintf("  - Create it first: createdb %s", database)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		summary = "connection timed out to " + addr
		causes = `  - Server is overloaded or unresponsive
  - Firewall silently dropping packets`

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		summary = "SSL/TLS connection error"
		causes = `  - Server requires SSL but sslmode is wrong
  - Certificate verification failed (try sslmode=require)`

	default:
		return fmt.Errorf("%w: failed to connect to database: %w", vaxstat.ErrConnectionFailed, err)
	}

	return fmt.Errorf("%w: %s\n\nPossible causes:\n%s\n\nOriginal error: %w", vaxstat.ErrConnectionFailed, summary, causes, err)
}
