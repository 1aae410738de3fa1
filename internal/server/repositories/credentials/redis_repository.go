package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis used by RedisRepository.
// *redis.Client and *redis.ClusterClient satisfy it.
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisRepository stores each credential as a JSON string under
// "<prefix>:<hash>". Keys carry no TTL: expired records stay until an
// external purge removes them, same as with the SQL backend.
type RedisRepository struct {
	rdb    RedisClient
	prefix string
}

func NewRedisRepository(rdb RedisClient, prefix string) *RedisRepository {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = common.DefaultTable
	}
	return &RedisRepository{rdb: rdb, prefix: prefix}
}

// ConnectRedis creates a Redis client from url and verifies connectivity.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (r *RedisRepository) key(hash string) string {
	return r.prefix + ":" + hash
}

// Insert stores c with SETNX so a duplicate hash is rejected atomically.
func (r *RedisRepository) Insert(ctx context.Context, c *models.Credential) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	ok, err := r.rdb.SetNX(ctx, r.key(c.Hash), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if !ok {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *RedisRepository) FindByHash(ctx context.Context, hash string) (*models.Credential, error) {
	raw, err := r.rdb.Get(ctx, r.key(hash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}
	c := &models.Credential{}
	if err := json.Unmarshal([]byte(raw), c); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return c, nil
}

func (r *RedisRepository) DeleteByHash(ctx context.Context, hash string) error {
	if err := r.rdb.Del(ctx, r.key(hash)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
