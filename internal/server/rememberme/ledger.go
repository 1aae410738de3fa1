// Package rememberme implements the remember-me token lifecycle: issuing a
// long-lived secret to a client, verifying a presented secret against its
// stored digest, and revoking it on logout.
//
// Only the digest of a secret is persisted. The raw secret exists in the
// IssueResult returned to the caller and in the Transport; it is never stored
// or logged.
package rememberme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/cryptox"
	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"github.com/dmitrijs2005/rememberme/internal/server/repositories/credentials"
)

// IssueRequest describes a token to issue. UserID is required; an empty
// Secret is generated and a nil ExpiresAt falls back to the configured expiry.
type IssueRequest struct {
	UserID    string
	Secret    string
	ExpiresAt *time.Time
}

// IssueResult is the outcome of Issue. Log Digest, never Secret.
type IssueResult struct {
	Secret     string
	Digest     string
	Credential *models.Credential
}

// Ledger issues, verifies and revokes remember-me credentials. It holds no
// per-request state and is safe for concurrent use.
type Ledger struct {
	store    credentials.Repository
	opts     Options
	observer Observer
	logger   logging.Logger
	now      func() time.Time
}

// Option customizes a Ledger at construction.
type Option func(*Ledger)

// WithObserver installs revocation hooks.
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		if o != nil {
			l.observer = o
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg logging.Logger) Option {
	return func(l *Ledger) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLedger constructs a Ledger over store. A nil store or unusable options
// yield common.ErrConfiguration.
func NewLedger(store credentials.Repository, opts Options, extra ...Option) (*Ledger, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: credential store is required", common.ErrConfiguration)
	}
	normalized, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		store:    store,
		opts:     normalized,
		observer: NopObserver{},
		logger:   logging.Nop{},
		now:      time.Now,
	}
	for _, o := range extra {
		o(l)
	}
	l.logger = l.logger.With("module", "rememberme")
	return l, nil
}

// Options returns a copy of the ledger configuration.
func (l *Ledger) Options() Options {
	o := l.opts
	if o.ExpiresAt != nil {
		t := *o.ExpiresAt
		o.ExpiresAt = &t
	}
	return o
}

// Issue creates a credential for req.UserID, stores its digest and hands the
// raw secret to t. t may be nil when the caller delivers the secret itself.
//
// Each call creates a new record; issuing repeatedly for one user (one token
// per device) is expected.
func (l *Ledger) Issue(ctx context.Context, t Transport, req IssueRequest) (*IssueResult, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, common.ErrEmptyUserID
	}

	secret := req.Secret
	if secret == "" {
		var err error
		secret, err = cryptox.GenerateSecret(l.opts.SecretLength, l.opts.Alphabet)
		if err != nil {
			l.logger.Error(ctx, "secret generation failed", "error", err)
			return nil, err
		}
	}

	digest, err := cryptox.Digest(secret, l.opts.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	created := l.now().UTC().Truncate(time.Second)
	expires := l.expiry(created, req.ExpiresAt)

	cred := &models.Credential{
		Hash:      digest,
		UserID:    req.UserID,
		CreatedAt: created,
		ExpiresAt: &expires,
	}
	if err := l.store.Insert(ctx, cred); err != nil {
		l.logger.Error(ctx, "storing credential failed", "digest", digest, "error", err)
		return nil, fmt.Errorf("%w: insert credential: %w", common.ErrStorage, err)
	}

	if t != nil {
		t.Set(l.opts.CookieName, secret, l.opts.cookieAttributes(expires))
	}

	l.logger.Info(ctx, "credential issued", "digest", digest, "user_id", req.UserID, "expires_at", expires)
	return &IssueResult{Secret: secret, Digest: digest, Credential: cred}, nil
}

// expiry picks the configured instant, or the ten-year horizon when none is
// set. An override may shorten that but never extend it.
func (l *Ledger) expiry(created time.Time, override *time.Time) time.Time {
	limit := created.AddDate(common.DefaultExpiryYears, 0, 0)
	if l.opts.ExpiresAt != nil {
		limit = *l.opts.ExpiresAt
	}
	if override != nil && override.Before(limit) {
		return override.UTC()
	}
	return limit
}

// Verify returns the live credential matching secret, or, when secret is
// empty, the value t carries under the configured cookie name.
//
// A nil credential with a nil error means no valid credential: nothing was
// presented, the digest is unknown, or the record has expired. An error is
// returned only when the store fails, and wraps common.ErrStorage.
func (l *Ledger) Verify(ctx context.Context, t Transport, secret string) (*models.Credential, error) {
	if secret == "" && t != nil {
		secret, _ = t.Get(l.opts.CookieName)
	}
	if secret == "" {
		return nil, nil
	}

	digest, err := cryptox.Digest(secret, l.opts.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	cred, err := l.store.FindByHash(ctx, digest)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			l.logger.Debug(ctx, "unknown credential", "digest", digest)
			return nil, nil
		}
		l.logger.Error(ctx, "credential lookup failed", "digest", digest, "error", err)
		return nil, fmt.Errorf("%w: find credential: %w", common.ErrStorage, err)
	}

	if cred.ExpiredAt(l.now()) {
		l.logger.Debug(ctx, "expired credential", "digest", digest, "user_id", cred.UserID)
		return nil, nil
	}
	return cred, nil
}

// Revoke verifies the credential carried by t, deletes its record when valid,
// and always clears the client-side value, even when verification or the
// delete fails. Revoking with no credential present is not an error.
//
// The returned error, if any, wraps common.ErrStorage.
func (l *Ledger) Revoke(ctx context.Context, t Transport) error {
	if t == nil {
		return fmt.Errorf("%w: transport is required", common.ErrConfiguration)
	}
	defer t.Clear(l.opts.CookieName, l.opts.cookieAttributes(time.Time{}))

	cred, err := l.Verify(ctx, t, "")
	if err != nil {
		return err
	}
	if cred == nil {
		return nil
	}

	l.observer.BeforeRevoke(ctx, cred)
	if err := l.store.DeleteByHash(ctx, cred.Hash); err != nil {
		l.logger.Error(ctx, "deleting credential failed", "digest", cred.Hash, "error", err)
		return fmt.Errorf("%w: delete credential: %w", common.ErrStorage, err)
	}
	l.observer.AfterRevoke(ctx, cred)

	l.logger.Info(ctx, "credential revoked", "digest", cred.Hash, "user_id", cred.UserID)
	return nil
}
