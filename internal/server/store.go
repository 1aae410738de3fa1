package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/dmitrijs2005/rememberme/internal/server/config"
	"github.com/dmitrijs2005/rememberme/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/rememberme/internal/server/repositories/repomanager"
)

// openStore builds the credential store selected by c.StoreBackend over table,
// which SQL backends create when missing and key-value backends use as their
// key prefix unless one is set. The returned close function releases its
// connections.
func openStore(ctx context.Context, c *config.Config, table string, l logging.Logger) (credentials.Repository, func() error, error) {
	noop := func() error { return nil }

	switch c.StoreBackend {
	case config.StorePostgres:
		db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		m := repomanager.NewPostgresRepositoryManager(table)
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return m.Credentials(db), db.Close, nil

	case config.StoreSQLite:
		db, err := repomanager.OpenSQLite(ctx, c.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		m := repomanager.NewSQLiteRepositoryManager(table)
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return m.Credentials(db), db.Close, nil

	case config.StoreRedis:
		rdb, err := credentials.ConnectRedis(ctx, c.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return credentials.NewRedisRepository(rdb, keyPrefix(c.RedisPrefix, table)), rdb.Close, nil

	case config.StoreS3:
		client, err := credentials.NewS3Client(ctx, credentials.S3Settings{
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
		})
		if err != nil {
			return nil, nil, err
		}
		return credentials.NewS3Repository(client, c.S3Bucket, keyPrefix(c.S3Prefix, table)), noop, nil

	case config.StoreMemory:
		l.Warn(ctx, "using in-memory credential store; credentials are lost on restart")
		return credentials.NewInMemoryRepository(), noop, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown store backend %q", common.ErrConfiguration, c.StoreBackend)
	}
}

func keyPrefix(explicit, table string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return table
}
