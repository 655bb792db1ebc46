package testinfra

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
)

// TestConnEnv overrides the container with an existing database.
const TestConnEnv = "VAXSTAT_TEST_CONN"

var (
	containerOnce sync.Once
	containerMu   sync.Mutex
	container     *PostgresContainer
	containerErr  error
)

func getOrStartContainer() (string, error) {
	containerOnce.Do(func() {
		ctr, err := StartPostGIS(context.Background())
		containerMu.Lock()
		defer containerMu.Unlock()
		container, containerErr = ctr, err
	})
	containerMu.Lock()
	defer containerMu.Unlock()
	if containerErr != nil {
		return "", containerErr
	}
	if container == nil {
		return "", errContainerStopped
	}
	return container.ConnString, nil
}

var errContainerStopped = errors.New("test container already terminated")

// TerminateContainer stops the container started by RequireDatabase, if any.
// Call it from TestMain after m.Run. If a test binary dies before reaching
// it, the testcontainers reaper removes the container.
func TerminateContainer() error {
	containerMu.Lock()
	ctr := container
	container = nil
	containerMu.Unlock()

	if ctr == nil {
		return nil
	}
	return ctr.Terminate(context.Background())
}

// RequireDatabase returns a connection string for integration tests.
// Priority: VAXSTAT_TEST_CONN > auto-started container > skip.
// Always skips in -short mode.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	if connString := os.Getenv(TestConnEnv); connString != "" {
		return connString
	}

	connString, err := getOrStartContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnv, err)
	}
	return connString
}
