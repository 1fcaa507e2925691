// Package testdb provides database helpers for tests.
//
// OpenSQLite gives every test its own migrated SQLite file in t.TempDir(), so
// store, service and router tests run hermetically and in parallel. OpenPostgres
// connects to DATABASE_URL for the integration suite and skips the test when the
// variable is unset.
//
// WithTx runs a test body inside a transaction that is always rolled back,
// which isolates tests that share one PostgreSQL database.
package testdb
