package server

import (
	"context"

	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
)

// auditObserver records revocations by digest.
func auditObserver(l logging.Logger) rememberme.Observer {
	l = l.With("module", "audit")
	return rememberme.ObserverFuncs{
		Before: func(ctx context.Context, c *models.Credential) {
			l.Info(ctx, "revoke requested", "digest", c.Hash, "user_id", c.UserID)
		},
		After: func(ctx context.Context, c *models.Credential) {
			l.Info(ctx, "revoke completed", "digest", c.Hash, "user_id", c.UserID, "created_at", c.CreatedAt)
		},
	}
}
