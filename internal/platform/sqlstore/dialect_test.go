package sqlstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pgx", d.DriverName())

	d, err = DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.DriverName())

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestPostgresRebind(t *testing.T) {
	got := postgresDialect{}.Rebind(`SELECT * FROM tasks WHERE id = ? AND title LIKE ?`)
	assert.Equal(t, `SELECT * FROM tasks WHERE id = $1 AND title LIKE $2`, got)

	assert.Equal(t, `SELECT 1`, postgresDialect{}.Rebind(`SELECT 1`))
	assert.Equal(t, `id = ?`, sqliteDialect{}.Rebind(`id = ?`))
}

func TestPostgresClassify(t *testing.T) {
	d := postgresDialect{}

	kind, detail := d.classify(&pgconn.PgError{Code: "23505", ConstraintName: "task_statuses_slug_key"})
	assert.Equal(t, uniqueViolation, kind)
	assert.Equal(t, "task_statuses_slug_key", detail)

	kind, _ = d.classify(&pgconn.PgError{Code: "23503"})
	assert.Equal(t, foreignKeyViolation, kind)

	kind, _ = d.classify(errors.New("boom"))
	assert.Equal(t, noViolation, kind)
}

func TestMapError(t *testing.T) {
	d := postgresDialect{}

	assert.NoError(t, MapError(d, nil))
	assert.ErrorIs(t, MapError(d, &pgconn.PgError{Code: "23505"}), store.ErrDuplicate)
	assert.ErrorIs(t, MapError(d, &pgconn.PgError{Code: "23503"}), store.ErrInvalidEntity)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, MapError(d, plain))
}

func TestUniqueError(t *testing.T) {
	q := querier{dialect: postgresDialect{}}

	err := q.uniqueError(&pgconn.PgError{Code: "23505", ConstraintName: "task_statuses_name_key"}, taskStatusUniqueErrors)
	assert.ErrorIs(t, err, store.ErrStatusNameExists)

	err = q.uniqueError(&pgconn.PgError{Code: "23505", ConstraintName: "other_key"}, taskStatusUniqueErrors)
	assert.Equal(t, store.ErrDuplicate, err)

	assert.Nil(t, q.uniqueError(errors.New("x"), taskStatusUniqueErrors))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "/tmp/a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("/tmp/a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(0)", sqliteDSN("a.db?_pragma=foreign_keys(0)"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_done\\`, escapeLike(`100% _done\`))
}
