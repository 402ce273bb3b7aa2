//go:build integration
// +build integration

package specify_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/specify"
)

// Driver smoke tests against real servers. Set POSTGRES_TEST_DSN and
// MYSQL_TEST_DSN to run the server-backed cases; the SQLite case runs
// unconditionally against a temp file.

func runDriverSuite(t *testing.T, db *specify.DB) {
	t.Helper()
	ctx := context.Background()

	_, err := db.SQLDB().Exec("DROP TABLE IF EXISTS specify_users")
	require.NoError(t, err)
	_, err = db.SQLDB().Exec(`
		CREATE TABLE specify_users (
			id     INTEGER PRIMARY KEY,
			name   VARCHAR(64) NOT NULL,
			status VARCHAR(16) NOT NULL
		)`)
	require.NoError(t, err)
	defer func() { _, _ = db.SQLDB().Exec("DROP TABLE specify_users") }()

	// Literal values keep the insert portable across placeholder styles
	_, err = db.SQLDB().Exec(`
		INSERT INTO specify_users (id, name, status) VALUES
			(1, 'alice', 'active'),
			(2, 'bob', 'inactive'),
			(3, 'carol', 'active')`)
	require.NoError(t, err)

	spec := specify.NewSpec("specify_users")
	spec.SetFilter(specify.Where(specify.Eq("status", "active")))
	spec.AddSort("name")
	spec.SetPage(0, 10)

	type row struct {
		ID     int    `db:"id"`
		Name   string `db:"name"`
		Status string `db:"status"`
	}

	var rows []row
	require.NoError(t, db.FindPage(ctx, spec, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].Name)
	assert.Equal(t, "carol", rows[1].Name)

	n, err := db.Count(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	found, err := db.Exists(ctx, spec)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestPostgresDriver(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	db, err := specify.NewDB("postgres", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	runDriverSuite(t, db)
}

func TestMySQLDriver(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}

	db, err := specify.NewDB("mysql", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	runDriverSuite(t, db)
}

func TestSQLite3Driver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specify_test.db")

	db, err := specify.Open("sqlite3", path, specify.WithMaxOpenConns(1))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	runDriverSuite(t, db)
}
