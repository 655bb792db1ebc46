package vaxstat

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Connector establishes a single database connection per operation.
// Different implementations handle various authentication methods
// (connection-string credentials, cloud IAM tokens).
type Connector interface {
	// Connect opens a new connection. The caller must close it when done.
	Connect(ctx context.Context) (*pgx.Conn, error)
}
