// Package credentials declares the server-side repository contract for
// remember-me credential records and provides its storage backends.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/rememberme/internal/server/models"
)

// Repository stores credential records keyed by the digest of their secret.
type Repository interface {
	// Insert stores a new credential. The hash is the primary key; inserting a
	// duplicate hash is an error.
	Insert(ctx context.Context, c *models.Credential) error

	// FindByHash returns the most recently created credential with the given
	// hash. Implementations return common.ErrorNotFound when none exists.
	FindByHash(ctx context.Context, hash string) (*models.Credential, error)

	// DeleteByHash removes the credential with the given hash. Deleting a
	// non-existent credential is not an error.
	DeleteByHash(ctx context.Context, hash string) error
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*InMemoryRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
	_ Repository = (*S3Repository)(nil)
	_ Repository = (*SQLiteRepository)(nil)
)
