package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/vaxstat/internal/aggregate"
	"github.com/vvka-141/vaxstat/internal/db"
	"github.com/vvka-141/vaxstat/internal/logging"
	"github.com/vvka-141/vaxstat/internal/testinfra"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

const sampleCSV = `2021-W01,10,0,0,0,100,BE,11522440,BE,ALL,COM,
2021-W01,5,0,0,0,50,BE,11522440,BE,ALL,MOD,
2021-W02,0,0,0,0,,FR,67320216,FR,ALL,UNK,
2021-W02,0,0,0,0,0,FR,67320216,FR,ALL,UNK,
2021-W03,3,,1,,7,XX,,XX,ALL,ZZZ,
`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	connString := testinfra.RequireDatabase(t)

	ctx := context.Background()
	connector, err := db.NewConnector(&vaxstat.ConnectionConfig{ConnectionString: connString}, logging.NewNullLogger())
	require.NoError(t, err)

	s, err := Open(ctx, connector, logging.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) }) //nolint:errcheck

	require.NoError(t, s.EnsureExtensions(ctx))
	require.NoError(t, s.ResetSchema(ctx))
	return s
}

func countRows(t *testing.T, conn *pgx.Conn, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func TestStore_LoadProjectAggregate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n, err := s.BulkLoad(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	var nullDoses int64
	require.NoError(t, s.conn.QueryRow(ctx,
		"SELECT count(*) FROM raw_data WHERE NumberDosesReceived IS NULL").Scan(&nullDoses))
	assert.Equal(t, int64(1), nullDoses, "empty fields stay NULL in storage")

	inserted, err := s.ProjectVaccineTable(ctx, vaxstat.ProjectAppend)
	require.NoError(t, err)
	assert.Equal(t, int64(5), inserted)

	counts, err := aggregate.New(s, logging.NewNullLogger()).ComputeCounts(ctx)
	require.NoError(t, err)

	assert.Equal(t, vaxstat.Counts{
		"Belgium": {"Pfizer/BioNTech": 100, "Moderna": 50, vaxstat.TotalDosesKey: 150},
		"France":  {"Unknown": 0, vaxstat.TotalDosesKey: 0},
		"XX":      {"ZZZ": 7, vaxstat.TotalDosesKey: 7},
	}, counts)
}

func TestStore_ProjectAppendDuplicatesRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.BulkLoad(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	_, err = s.ProjectVaccineTable(ctx, vaxstat.ProjectAppend)
	require.NoError(t, err)
	_, err = s.ProjectVaccineTable(ctx, vaxstat.ProjectAppend)
	require.NoError(t, err)
	assert.Equal(t, int64(10), countRows(t, s.conn, vaxstat.VaccineTable))

	// DISTINCT collapses the duplicates, so the summary is unchanged.
	records, err := s.DistinctDoses(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestStore_ProjectReplaceIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.BulkLoad(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = s.ProjectVaccineTable(ctx, vaxstat.ProjectReplace)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(5), countRows(t, s.conn, vaxstat.VaccineTable))
}

func TestStore_BulkLoadMalformedRowCommitsNothing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bad := sampleCSV + "2021-W04,not-a-number,0,0,0,1,BE,1,BE,ALL,COM,\n"
	_, err := s.BulkLoad(ctx, strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, vaxstat.ErrLoadFailed)

	assert.Equal(t, int64(0), countRows(t, s.conn, vaxstat.RawTable))
}

func TestStore_ResetSchemaIsRepeatable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.BulkLoad(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.NoError(t, s.ResetSchema(ctx))
	require.NoError(t, s.ResetSchema(ctx))
	require.NoError(t, s.EnsureExtensions(ctx))
	assert.Equal(t, int64(0), countRows(t, s.conn, vaxstat.RawTable))
}

func TestStore_DistinctDosesWithoutTableIsConnectionError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.conn.Exec(ctx, "DROP TABLE "+vaxstat.VaccineTable)
	require.NoError(t, err)

	_, err = s.DistinctDoses(ctx)
	assert.ErrorIs(t, err, vaxstat.ErrConnectionFailed)
}

func TestStore_LoadFileLogsChecksum(t *testing.T) {
	s := openTestStore(t)
	var logs strings.Builder
	s.logger = logging.NewConsoleLoggerTo(&logs, true)

	path := filepath.Join(t.TempDir(), vaxstat.DefaultDataFile)
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	n, err := s.LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	sum := sha256.Sum256([]byte(sampleCSV))
	assert.Contains(t, logs.String(), "sha256 "+hex.EncodeToString(sum[:]))
}
