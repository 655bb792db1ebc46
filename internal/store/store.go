package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/vaxstat/internal/checksum"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// Store runs loader and query operations on a single connection.
type Store struct {
	conn   *pgx.Conn
	closer io.Closer
	logger vaxstat.Logger
}

// New wraps an open connection. The caller keeps ownership of conn.
func New(conn *pgx.Conn, logger vaxstat.Logger) *Store {
	return &Store{conn: conn, logger: logger}
}

// Open connects through connector and returns a Store owning the connection.
// If connector holds resources of its own (io.Closer), Close releases them too.
func Open(ctx context.Context, connector vaxstat.Connector, logger vaxstat.Logger) (*Store, error) {
	conn, err := connector.Connect(ctx)
	if err != nil {
		if c, ok := connector.(io.Closer); ok {
			c.Close() //nolint:errcheck
		}
		return nil, err
	}

	s := New(conn, logger)
	if c, ok := connector.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// Close closes the connection opened by Open.
func (s *Store) Close(ctx context.Context) error {
	err := s.conn.Close(ctx)
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	return err
}

// EnsureExtensions creates the PostGIS extension if it is missing.
func (s *Store) EnsureExtensions(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, createPostGIS); err != nil {
		return fmt.Errorf("%w: failed to create postgis extension: %w", vaxstat.ErrLoadFailed, err)
	}
	s.logger.Verbose("Extension postgis is present")
	return nil
}

// ResetSchema drops and recreates both tables. Safe to call repeatedly.
func (s *Store) ResetSchema(ctx context.Context) error {
	err := pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
		for _, stmt := range []string{dropRawTable, dropVaccineTable, createRawTable, createVaccineTable} {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", stmt, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to reset schema: %w", vaxstat.ErrLoadFailed, err)
	}

	s.logger.Verbose("Recreated tables %s and %s", vaxstat.RawTable, vaxstat.VaccineTable)
	return nil
}

// BulkLoad copies header-free CSV rows from r into the raw table and returns
// the number of rows copied. The copy runs in a transaction committed only
// after the last row is accepted; on failure nothing is committed.
func (s *Store) BulkLoad(ctx context.Context, r io.Reader) (int64, error) {
	var rows int64

	err := pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
		tag, err := tx.Conn().PgConn().CopyFrom(ctx, r, copyRawData)
		if err != nil {
			return err
		}
		rows = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: COPY into %s: %w", vaxstat.ErrLoadFailed, vaxstat.RawTable, err)
	}

	s.logger.Verbose("Copied %d rows into %s", rows, vaxstat.RawTable)
	return rows, nil
}

// LoadFile opens path and bulk loads it into the raw table. The file's
// SHA-256 is logged so a load can be traced back to its export.
func (s *Store) LoadFile(ctx context.Context, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", vaxstat.ErrLoadFailed, err)
	}
	defer f.Close()

	r := checksum.NewReader(f)
	rows, err := s.BulkLoad(ctx, r)
	if err != nil {
		return 0, err
	}
	s.logger.Verbose("Loaded %s (%d bytes, sha256 %s)", path, r.BytesRead(), r.Sum())
	return rows, nil
}

// ProjectVaccineTable copies (doses, country, vaccine) from the raw table into
// the vaccine table and returns the number of rows inserted.
//
// With vaxstat.ProjectAppend, rows are added to whatever the table holds, so
// repeated calls duplicate rows. vaxstat.ProjectReplace truncates first, in the
// same transaction, which makes the call idempotent.
func (s *Store) ProjectVaccineTable(ctx context.Context, mode vaxstat.ProjectionMode) (int64, error) {
	var rows int64

	err := pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
		if mode == vaxstat.ProjectReplace {
			if _, err := tx.Exec(ctx, truncateVaccineTable); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, projectVaccineData)
		if err != nil {
			return err
		}
		rows = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to populate %s: %w", vaxstat.ErrLoadFailed, vaxstat.VaccineTable, err)
	}

	s.logger.Verbose("Inserted %d rows into %s (%s)", rows, vaxstat.VaccineTable, mode)
	return rows, nil
}

// DistinctDoses returns every distinct (doses, country, vaccine) tuple of the
// vaccine table in the order the server produces them. NULL country or
// vaccine codes come back as empty strings.
func (s *Store) DistinctDoses(ctx context.Context) ([]vaxstat.DoseRecord, error) {
	rows, err := s.conn.Query(ctx, selectDistinctDoses)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query %s: %w", vaxstat.ErrConnectionFailed, vaxstat.VaccineTable, err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (vaxstat.DoseRecord, error) {
		var rec vaxstat.DoseRecord
		var country, vaccine pgtype.Text
		if err := row.Scan(&rec.DosesReceived, &country, &vaccine); err != nil {
			return rec, err
		}
		rec.CountryCode = country.String
		rec.VaccineCode = vaccine.String
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", vaxstat.ErrConnectionFailed, vaxstat.VaccineTable, err)
	}

	return records, nil
}
