package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE tokens (hash TEXT PRIMARY KEY, user_id TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func tokens(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tokens`).Scan(&n))
	return n
}

func TestWithTx_Commits(t *testing.T) {
	db := openDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tokens VALUES ('h1', 'u1')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, tokens(t, db))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := openDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO tokens VALUES ('h1', 'u1')`)
		require.NoError(t, e)
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, tokens(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := openDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, tokens(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO tokens VALUES ('h1', 'u1')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })
	require.ErrorContains(t, err, "begin tx")
}

func TestExecAll_StopsAtFirstFailure(t *testing.T) {
	db := openDB(t)

	err := ExecAll(context.Background(), db, []string{
		`INSERT INTO tokens VALUES ('h1', 'u1')`,
		`INSERT INTO missing VALUES (1)`,
		`INSERT INTO tokens VALUES ('h2', 'u2')`,
	})
	require.ErrorContains(t, err, "statement 2")
	require.Equal(t, 1, tokens(t, db))
}

func TestExecAll_InsideTx(t *testing.T) {
	db := openDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return ExecAll(ctx, tx, []string{
			`INSERT INTO tokens VALUES ('h1', 'u1')`,
			`INSERT INTO tokens VALUES ('h1', 'u2')`,
		})
	})
	require.Error(t, err)
	require.Equal(t, 0, tokens(t, db), "duplicate hash must undo the whole batch")
}
