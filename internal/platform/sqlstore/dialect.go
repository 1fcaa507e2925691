package sqlstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Supported driver names, as accepted in configuration.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
)

// Dialect captures what differs between the supported databases.
type Dialect interface {
	// Name returns the configuration name of the dialect.
	Name() string
	// DriverName returns the database/sql driver name.
	DriverName() string
	// Rebind converts '?' placeholders to the dialect's native form.
	Rebind(query string) string

	gooseDialect() string
	migrationsDir() string
	// classify reports which constraint, if any, err violated, plus a detail
	// string naming the constraint or column.
	classify(err error) (violation, string)
}

// DialectFor returns the Dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres:
		return postgresDialect{}, nil
	case DriverSQLite:
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string          { return DriverPostgres }
func (postgresDialect) DriverName() string    { return "pgx" }
func (postgresDialect) gooseDialect() string  { return "postgres" }
func (postgresDialect) migrationsDir() string { return "migrations/postgres" }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) classify(err error) (violation, string) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return noViolation, ""
	}
	switch pgErr.Code {
	case uniqueViolationCode:
		return uniqueViolation, pgErr.ConstraintName
	case foreignKeyViolationCode:
		return foreignKeyViolation, pgErr.ConstraintName
	}
	return noViolation, ""
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string               { return DriverSQLite }
func (sqliteDialect) DriverName() string         { return "sqlite" }
func (sqliteDialect) gooseDialect() string       { return "sqlite3" }
func (sqliteDialect) migrationsDir() string      { return "migrations/sqlite" }
func (sqliteDialect) Rebind(query string) string { return query }

// classify inspects the extended result code and falls back to the message,
// which names the violated column as "table.column".
func (sqliteDialect) classify(err error) (violation, string) {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return noViolation, ""
	}
	msg := sqlErr.Error()
	switch sqlErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return uniqueViolation, msg
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return foreignKeyViolation, msg
	}
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return uniqueViolation, msg
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return foreignKeyViolation, msg
	}
	return noViolation, ""
}
