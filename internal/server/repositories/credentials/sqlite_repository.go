package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/dbx"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"github.com/jackc/pgx/v5"
)

// SQLiteRepository implements Repository on SQLite for single-node
// deployments. Instants are stored as Unix nanoseconds in UTC.
type SQLiteRepository struct {
	db    dbx.DBTX
	table string
}

func NewSQLiteRepository(db dbx.DBTX, table string) *SQLiteRepository {
	return &SQLiteRepository{db: db, table: quoteTable(table)}
}

// SQLiteSchema returns the DDL creating table and its user index.
func SQLiteSchema(table string) []string {
	table = strings.TrimSpace(table)
	if table == "" {
		table = common.DefaultTable
	}
	parts := strings.Split(table, ".")
	name := parts[len(parts)-1]

	// SQLite qualifies the index name, not the indexed table.
	quoted := quoteTable(table)
	index := pgx.Identifier(append(parts[:len(parts)-1:len(parts)-1], name+"_user_id_idx")).Sanitize()
	on := pgx.Identifier{name}.Sanitize()
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + quoted + ` (
			hash       TEXT    PRIMARY KEY,
			user_id    TEXT    NOT NULL,
			created_at INTEGER NOT NULL,
			expires_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS ` + index + ` ON ` + on + ` (user_id)`,
	}
}

func (r *SQLiteRepository) Insert(ctx context.Context, c *models.Credential) error {
	var expires sql.NullInt64
	if c.ExpiresAt != nil {
		expires = sql.NullInt64{Int64: c.ExpiresAt.UnixNano(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO `+r.table+` (hash, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, c.Hash, c.UserID, c.CreatedAt.UnixNano(), expires)
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FindByHash(ctx context.Context, hash string) (*models.Credential, error) {
	var (
		c       models.Credential
		created int64
		expires sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT hash, user_id, created_at, expires_at
		FROM `+r.table+`
		WHERE hash = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, hash).Scan(&c.Hash, &c.UserID, &created, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}

	c.CreatedAt = time.Unix(0, created).UTC()
	if expires.Valid {
		t := time.Unix(0, expires.Int64).UTC()
		c.ExpiresAt = &t
	}
	return &c, nil
}

func (r *SQLiteRepository) DeleteByHash(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE hash = ?`, hash)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
