package core

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/specify/internal/dialects"
)

func init() {
	// sqlmock connections carry their own driver name; quote and page like SQLite
	dialects.RegisterDialect("sqlmock", &dialects.SQLiteDialect{})
}

type user struct {
	ID     int    `db:"id"`
	Name   string `db:"name"`
	Status string `db:"status"`
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	db := WrapDB(mockDB, "sqlmock")
	t.Cleanup(func() {
		_ = db.Close()
		_ = mockDB.Close()
	})
	return db, mock
}

func TestFind_ForwardsFilterSortProjectionPaging(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")
	spec.SetFilter(Where(Eq("status", "active")))
	spec.AddSort("name")
	spec.SetProjection("id", "name")
	spec.SetPage(10, 20)

	mock.ExpectPrepare(`SELECT "id", "name" FROM "users" WHERE "status"=? ORDER BY "name" LIMIT 20 OFFSET 10`).
		ExpectQuery().
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "alice").
			AddRow(2, "bob"))

	var users []user
	require.NoError(t, db.Find(context.Background(), spec, &users))

	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)
	assert.Equal(t, 2, users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_NilArguments(t *testing.T) {
	db, mock := newMockDB(t)

	var users []user
	err := db.Find(context.Background(), nil, &users)
	assert.ErrorIs(t, err, ErrNilSpec)

	err = (*DB)(nil).Find(context.Background(), NewSpec("users"), &users)
	assert.ErrorIs(t, err, ErrNilConnection)

	// No table on the spec and none inferable from dest
	var ints []int
	err = db.Find(context.Background(), NewSpec(""), &ints)
	assert.ErrorIs(t, err, ErrNoTable)

	// No database call was attempted
	assert.NoError(t, mock.ExpectationsWereMet())
}

type account struct {
	ID int `db:"id"`
}

func (account) TableName() string { return "accounts" }

func TestFind_InfersTableFromDest(t *testing.T) {
	db, mock := newMockDB(t)

	// Struct name snake_cased
	mock.ExpectPrepare(`SELECT * FROM "user"`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}))

	var users []user
	require.NoError(t, db.Find(context.Background(), NewSpec(""), &users))

	// TableName() wins over the struct name
	mock.ExpectPrepare(`SELECT * FROM "accounts"`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var accounts []account
	require.NoError(t, db.Find(context.Background(), NewSpec(""), &accounts))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFirst_ReturnsErrNoRows(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")
	spec.SetFilter(Where(Eq("id", 42)))

	mock.ExpectPrepare(`SELECT * FROM "users" WHERE "id"=?`).
		ExpectQuery().
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}))

	var u user
	err := db.First(context.Background(), spec, &u)
	assert.ErrorIs(t, err, ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_ForwardsFilterOnly(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")
	spec.SetFilter(Where(Eq("status", "active")))
	// None of these may influence the count statement
	spec.AddSortDesc("name")
	spec.SetProjection("id")
	spec.SetPage(10, 20)

	mock.ExpectPrepare(`SELECT COUNT(*) FROM "users" WHERE "status"=?`).
		ExpectQuery().
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(7))

	n, err := db.Count(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_NilArguments(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := db.Count(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilSpec)

	_, err = (*DB)(nil).Count(context.Background(), NewSpec("users"))
	assert.ErrorIs(t, err, ErrNilConnection)

	_, err = db.Count(context.Background(), NewSpec(""))
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestExists_LimitOneProbe(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")
	spec.SetFilter(Where(Eq("status", "active")))
	spec.AddSort("name") // ignored by the probe
	spec.SetPage(10, 20) // ignored by the probe

	mock.ExpectPrepare(`SELECT 1 FROM "users" WHERE "status"=? LIMIT 1`).
		ExpectQuery().
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	found, err := db.Exists(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists_NoMatchReturnsFalse(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")
	spec.SetFilter(Where(Eq("status", "missing")))

	mock.ExpectPrepare(`SELECT 1 FROM "users" WHERE "status"=? LIMIT 1`).
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	found, err := db.Exists(context.Background(), spec)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPage_RequiresSortForPaging(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")
	spec.SetPage(10, 20)

	var users []user
	err := db.FindPage(context.Background(), spec, &users)
	assert.ErrorIs(t, err, ErrUnorderedPage)

	// Failed before any database call
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPage_SucceedsWithSort(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")
	spec.SetFilter(Where(Eq("status", "active")))
	spec.AddSort("name")
	spec.SetPage(10, 20)

	mock.ExpectPrepare(`SELECT * FROM "users" WHERE "status"=? ORDER BY "name" LIMIT 20 OFFSET 10`).
		ExpectQuery().
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(1, "alice", "active"))

	var users []user
	require.NoError(t, db.FindPage(context.Background(), spec, &users))
	require.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPage_NoPagingDegeneratesToFind(t *testing.T) {
	db, mock := newMockDB(t)

	spec := NewSpec("users")

	mock.ExpectPrepare(`SELECT * FROM "users"`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}))

	var users []user
	require.NoError(t, db.FindPage(context.Background(), spec, &users))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_DatabaseErrorPropagatesVerbatim(t *testing.T) {
	db, mock := newMockDB(t)

	boom := errors.New("connection reset")
	mock.ExpectPrepare(`SELECT * FROM "users"`).
		ExpectQuery().
		WillReturnError(boom)

	var users []user
	err := db.Find(context.Background(), NewSpec("users"), &users)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_FindAndCommit(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectPrepare(`SELECT * FROM "users" WHERE "status"=?`).
		ExpectQuery().
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(1, "alice", "active"))
	mock.ExpectCommit()

	tx, err := db.Begin(context.Background())
	require.NoError(t, err)

	spec := NewSpec("users")
	spec.SetFilter(Where(Eq("status", "active")))

	var users []user
	require.NoError(t, tx.Find(context.Background(), spec, &users))
	require.Len(t, users, 1)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_NilReceiver(t *testing.T) {
	var tx *Tx
	var users []user

	assert.ErrorIs(t, tx.Find(context.Background(), NewSpec("users"), &users), ErrNilConnection)
	_, err := tx.Count(context.Background(), NewSpec("users"))
	assert.ErrorIs(t, err, ErrNilConnection)
	_, err = tx.Exists(context.Background(), NewSpec("users"))
	assert.ErrorIs(t, err, ErrNilConnection)
}

func TestFind_QueryHookObservesExecution(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	var events []QueryEvent
	db := WrapDB(mockDB, "sqlmock", WithQueryHook(func(_ context.Context, e QueryEvent) {
		events = append(events, e)
	}))
	defer func() { _ = db.Close() }()

	mock.ExpectPrepare(`SELECT COUNT(*) FROM "users"`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(4))

	_, err = db.Count(context.Background(), NewSpec("users"))
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "count", events[0].Operation)
	assert.Equal(t, "users", events[0].Table)
	assert.Equal(t, int64(1), events[0].Rows)
	assert.NoError(t, events[0].Error)
}
