package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/vaxstat/internal/config"
	"github.com/vvka-141/vaxstat/internal/db"
	"github.com/vvka-141/vaxstat/internal/logging"
	"github.com/vvka-141/vaxstat/internal/store"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// session carries what one command needs for a single database operation.
type session struct {
	cfg    *config.Config
	store  *store.Store
	logger vaxstat.Logger
}

func newLogger() *logging.ConsoleLogger {
	return logging.NewConsoleLogger(rootFlags.verbose).WithRunID(uuid.New())
}

// withSession opens one connection, runs fn, and closes the connection.
// Interrupts (Ctrl+C, SIGTERM) and the configured timeout cancel the context.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cfg, err := resolvedConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	connector, err := db.NewConnector(&cfg.Connection, logger)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, connector, logger)
	if err != nil {
		return err
	}
	defer func() {
		// ctx may already be cancelled here.
		if cerr := st.Close(context.Background()); cerr != nil {
			logger.Verbose("Failed to close connection: %v", cerr)
		}
	}()

	return fn(ctx, &session{cfg: cfg, store: st, logger: logger})
}
