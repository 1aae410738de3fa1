package credentials

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
)

// InMemoryRepository keeps credentials in a process-local map. It is meant for
// tests and single-process development servers; records do not survive a
// restart.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]models.Credential
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]models.Credential)}
}

func (r *InMemoryRepository) Insert(ctx context.Context, c *models.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[c.Hash]; ok {
		return common.ErrorAlreadyExists
	}
	r.records[c.Hash] = copyCredential(c)
	return nil
}

func (r *InMemoryRepository) FindByHash(ctx context.Context, hash string) (*models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.records[hash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := copyCredential(&c)
	return &out, nil
}

func (r *InMemoryRepository) DeleteByHash(ctx context.Context, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, hash)
	return nil
}

// Len returns the number of stored credentials, expired ones included.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func copyCredential(c *models.Credential) models.Credential {
	out := *c
	if c.ExpiresAt != nil {
		t := *c.ExpiresAt
		out.ExpiresAt = &t
	}
	return out
}
