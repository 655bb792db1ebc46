package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/vaxstat/internal/retry"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// TokenBasedConnector connects with a cloud token (AWS IAM, Azure Entra ID)
// used as the PostgreSQL password. A fresh token is requested per attempt.
type TokenBasedConnector struct {
	config        *vaxstat.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        vaxstat.Logger
	retryExecutor *retry.Executor
}

// NewTokenBasedConnector creates a connector that authenticates through tokenProvider.
// providerName is used in log and error messages.
func NewTokenBasedConnector(config *vaxstat.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger vaxstat.Logger) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
		retryExecutor: newRetryExecutor(config.ConnectRetries, logger),
	}
}

// Connect opens a new connection. The caller must close it.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	base, err := ParseConnConfig(c.config.ConnectionString)
	if err != nil {
		return nil, err
	}
	configureConn(base, c.logger)

	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire %s token: %w", vaxstat.ErrConnectionFailed, c.providerName, err)
	}
	if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
		c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
	}

	cfg := base.Copy()
	cfg.Password = token

	c.logger.Verbose("Connecting to %s with %s", Target(c.config.ConnectionString), c.tokenProvider)
	return connect(ctx, c.retryExecutor, cfg)
}
