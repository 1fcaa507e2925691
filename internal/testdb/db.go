package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 10 * time.Second

// IsIntegrationTestEnvironment returns true if DATABASE_URL is set, indicating
// that PostgreSQL-backed tests can run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the PostgreSQL URL for tests. It checks
// DATABASE_URL and then TASKMGR_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("TASKMGR_TEST_DB_URL")
}

// OpenSQLite creates a migrated SQLite database private to the test.
// The connection is closed when the test finishes.
func OpenSQLite(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	return open(t, config.DatabaseConfig{Driver: sqlstore.DriverSQLite, URL: path})
}

// OpenPostgres connects to the integration database and applies migrations.
// It skips the test when no database URL is configured.
func OpenPostgres(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}
	return open(t, config.DatabaseConfig{Driver: sqlstore.DriverPostgres, URL: url})
}

func open(t *testing.T, cfg config.DatabaseConfig) (*sql.DB, sqlstore.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, dialect, err := sqlstore.Open(ctx, cfg)
	require.NoError(t, err, "failed to open %s test database", cfg.Driver)

	t.Cleanup(func() { CleanupDB(t, db) })

	require.NoError(t, sqlstore.Migrate(ctx, db, dialect, nil), "failed to migrate test database")
	return db, dialect
}

// CleanupDB closes a database connection, logging rather than failing on error.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
