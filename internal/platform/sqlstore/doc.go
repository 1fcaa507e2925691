// Package sqlstore implements the store interfaces on database/sql.
//
// The same SQL runs against PostgreSQL (through the pgx stdlib driver) and
// SQLite (through the pure-Go modernc.org/sqlite driver). Queries are written
// with '?' placeholders and rebound per Dialect; constraint violations are
// classified per Dialect and mapped onto the store package's sentinel errors.
package sqlstore
