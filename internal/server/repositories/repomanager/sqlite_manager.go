package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/rememberme/internal/dbx"
	"github.com/dmitrijs2005/rememberme/internal/server/repositories/credentials"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. Its migration
// creates the configured table directly, so custom table names need no
// operator step.
type SQLiteRepositoryManager struct {
	table string
}

func NewSQLiteRepositoryManager(table string) RepositoryManager {
	return &SQLiteRepositoryManager{table: table}
}

func (m *SQLiteRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewSQLiteRepository(db, m.table)
}

// RunMigrations applies the schema in a single transaction.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := dbx.ExecAll(ctx, tx, credentials.SQLiteSchema(m.table)); err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
		return nil
	})
}

// OpenSQLite opens the SQLite database at dsn. A single connection keeps
// ":memory:" databases coherent and serializes writers.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
