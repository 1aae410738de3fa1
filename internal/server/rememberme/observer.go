package rememberme

import (
	"context"

	"github.com/dmitrijs2005/rememberme/internal/server/models"
)

// Observer receives revocation events. BeforeRevoke runs after a credential
// was verified and before its record is deleted; AfterRevoke runs only once
// the delete succeeded.
type Observer interface {
	BeforeRevoke(ctx context.Context, c *models.Credential)
	AfterRevoke(ctx context.Context, c *models.Credential)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) BeforeRevoke(context.Context, *models.Credential) {}
func (NopObserver) AfterRevoke(context.Context, *models.Credential)  {}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Before func(ctx context.Context, c *models.Credential)
	After  func(ctx context.Context, c *models.Credential)
}

func (o ObserverFuncs) BeforeRevoke(ctx context.Context, c *models.Credential) {
	if o.Before != nil {
		o.Before(ctx, c)
	}
}

func (o ObserverFuncs) AfterRevoke(ctx context.Context, c *models.Credential) {
	if o.After != nil {
		o.After(ctx, c)
	}
}
