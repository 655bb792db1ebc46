package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// GoogleCloudSQLConnector connects to Cloud SQL for PostgreSQL through the
// Cloud SQL Go Connector with IAM database authentication. Host and password
// in the connection string are ignored; user and dbname are used.
//
// Close must be called after the connection is closed to release the dialer.
type GoogleCloudSQLConnector struct {
	config *vaxstat.ConnectionConfig
	logger vaxstat.Logger
	dialer *cloudsqlconn.Dialer
}

// NewGoogleCloudSQLConnector creates a connector for config.GoogleInstance.
func NewGoogleCloudSQLConnector(config *vaxstat.ConnectionConfig, logger vaxstat.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config, logger: logger}
}

// Connect opens a new connection. The caller must close it, then call Close.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	cfg, err := ParseConnConfig(c.config.ConnectionString)
	if err != nil {
		return nil, err
	}
	configureConn(cfg, c.logger)

	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", vaxstat.ErrConnectionFailed, err)
	}

	instance := c.config.GoogleInstance
	cfg.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, instance)
	}

	c.logger.Verbose("Connecting to Cloud SQL instance %s as %s", instance, cfg.User)
	conn, err := connect(ctx, newRetryExecutor(c.config.ConnectRetries, c.logger), cfg)
	if err != nil {
		dialer.Close()
		return nil, err
	}

	c.dialer = dialer
	return conn, nil
}

// Close releases the Cloud SQL dialer.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer != nil {
		err := c.dialer.Close()
		c.dialer = nil
		return err
	}
	return nil
}
