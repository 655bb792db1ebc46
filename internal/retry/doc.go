// Package retry retries connection establishment on transient PostgreSQL
// failures with exponential backoff.
//
//	executor := retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    conn, err = pgx.ConnectConfig(ctx, cfg)
//	    return err
//	})
//
// Only connecting is retried. Statements are never replayed, since a COPY or
// INSERT that failed half way cannot be assumed safe to repeat.
package retry
