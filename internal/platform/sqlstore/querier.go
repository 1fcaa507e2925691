package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/task-manager-api/internal/store"
)

// querier runs dialect-neutral SQL on a connection or transaction.
type querier struct {
	db      store.DBTX
	dialect Dialect
}

func (q querier) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.db.ExecContext(ctx, q.dialect.Rebind(query), args...)
}

func (q querier) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.dialect.Rebind(query), args...)
}

func (q querier) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.dialect.Rebind(query), args...)
}

func (q querier) withTx(tx *sql.Tx) querier {
	return querier{db: tx, dialect: q.dialect}
}

// MapError maps a database error to the store package's sentinel errors.
// Unrecognized errors are returned unchanged.
func MapError(dialect Dialect, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	switch kind, detail := dialect.classify(err); kind {
	case uniqueViolation:
		return fmt.Errorf("%w: %s", store.ErrDuplicate, detail)
	case foreignKeyViolation:
		return fmt.Errorf("%w: foreign key violation: %s", store.ErrInvalidEntity, detail)
	}

	return err
}

// uniqueError returns the entity-specific duplicate error whose key appears in
// the violated constraint, or nil when err is not a unique violation.
// Keys are checked in order, so list the most specific first.
func (q querier) uniqueError(err error, byColumn []columnError) error {
	kind, detail := q.dialect.classify(err)
	if kind != uniqueViolation {
		return nil
	}
	for _, c := range byColumn {
		if strings.Contains(detail, c.column) {
			return c.err
		}
	}
	return store.ErrDuplicate
}

// isForeignKeyViolation reports whether err is a referential integrity failure.
func (q querier) isForeignKeyViolation(err error) bool {
	kind, _ := q.dialect.classify(err)
	return kind == foreignKeyViolation
}

type columnError struct {
	column string
	err    error
}

// checkRowsAffected returns notFound when the statement touched no rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	n := ni.Int64
	return &n
}

// placeholders returns "?, ?, ..." with n entries.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// dbTime normalizes a timestamp to what both databases round-trip exactly.
func dbTime(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Microsecond)
}
