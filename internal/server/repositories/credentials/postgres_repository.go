package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/dbx"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx) against a configurable table.
type PostgresRepository struct {
	db    dbx.DBTX
	table string
}

// NewPostgresRepository constructs a repository bound to the given DBTX and
// table. The table may be schema-qualified ("auth.rememberme"); an empty name
// selects common.DefaultTable.
func NewPostgresRepository(db dbx.DBTX, table string) *PostgresRepository {
	return &PostgresRepository{db: db, table: quoteTable(table)}
}

func quoteTable(table string) string {
	table = strings.TrimSpace(table)
	if table == "" {
		table = common.DefaultTable
	}
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// PostgresSchema returns idempotent DDL creating table with the layout of the
// embedded migration. Index names are never schema-qualified in Postgres; the
// index lands in the table's schema.
func PostgresSchema(table string) []string {
	table = strings.TrimSpace(table)
	if table == "" {
		table = common.DefaultTable
	}
	parts := strings.Split(table, ".")
	name := parts[len(parts)-1]
	quoted := quoteTable(table)

	return []string{
		`CREATE TABLE IF NOT EXISTS ` + quoted + ` (
			hash       TEXT        PRIMARY KEY,
			user_id    TEXT        NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			expires_at TIMESTAMPTZ NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ` + pgx.Identifier{name + "_user_id_idx"}.Sanitize() + ` ON ` + quoted + ` (user_id)`,
		`CREATE INDEX IF NOT EXISTS ` + pgx.Identifier{name + "_expires_at_idx"}.Sanitize() + ` ON ` + quoted + ` (expires_at)`,
	}
}

// Insert stores c.
func (r *PostgresRepository) Insert(ctx context.Context, c *models.Credential) error {
	query := `
		INSERT INTO ` + r.table + ` (hash, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	var expires sql.NullTime
	if c.ExpiresAt != nil {
		expires = sql.NullTime{Time: *c.ExpiresAt, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, query, c.Hash, c.UserID, c.CreatedAt, expires); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// FindByHash returns the newest credential row for hash.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) FindByHash(ctx context.Context, hash string) (*models.Credential, error) {
	query := `
		SELECT hash, user_id, created_at, expires_at
		FROM ` + r.table + `
		WHERE hash = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	c := &models.Credential{}
	var expires sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, hash).Scan(&c.Hash, &c.UserID, &c.CreatedAt, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if expires.Valid {
		t := expires.Time
		c.ExpiresAt = &t
	}
	return c, nil
}

// DeleteByHash removes the credential row for hash.
func (r *PostgresRepository) DeleteByHash(ctx context.Context, hash string) error {
	query := `
		DELETE FROM ` + r.table + `
		WHERE hash = $1
	`
	if _, err := r.db.ExecContext(ctx, query, hash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
