package rememberme

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/cryptox"
)

// Options is the immutable configuration of a Ledger. It is copied at
// construction; later changes to the caller's value have no effect.
type Options struct {
	CookieName     string
	SecretLength   int
	Alphabet       string
	Table          string
	HashAlgorithm  string
	ExpiresAt      *time.Time // nil selects the ten-year horizon
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieHTTPOnly bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		CookieName:    common.DefaultCookieName,
		SecretLength:  common.DefaultSecretLength,
		Alphabet:      common.AlphanumericAlphabet,
		Table:         common.DefaultTable,
		HashAlgorithm: common.DefaultHashAlgorithm,
		CookiePath:    common.DefaultCookiePath,
	}
}

// normalized fills empty fields with defaults, detaches ExpiresAt and checks
// the result.
func (o Options) normalized() (Options, error) {
	d := DefaultOptions()

	o.CookieName = strings.TrimSpace(o.CookieName)
	if o.CookieName == "" {
		o.CookieName = d.CookieName
	}
	if o.SecretLength == 0 {
		o.SecretLength = d.SecretLength
	}
	if o.Alphabet == "" {
		o.Alphabet = d.Alphabet
	}
	if strings.TrimSpace(o.Table) == "" {
		o.Table = d.Table
	}
	o.HashAlgorithm = cryptox.NormalizeAlgorithm(o.HashAlgorithm)
	if o.CookiePath == "" {
		o.CookiePath = d.CookiePath
	}
	if o.ExpiresAt != nil {
		t := o.ExpiresAt.UTC()
		o.ExpiresAt = &t
	}

	if o.SecretLength < 0 || !cryptox.ValidAlphabet(o.Alphabet) {
		return o, fmt.Errorf("%w: %w", common.ErrConfiguration, common.ErrInvalidSecretParams)
	}
	if !cryptox.SupportsAlgorithm(o.HashAlgorithm) {
		return o, fmt.Errorf("%w: %w: %q", common.ErrConfiguration, common.ErrUnsupportedHashAlgorithm, o.HashAlgorithm)
	}
	return o, nil
}

func (o Options) cookieAttributes(expires time.Time) CookieAttributes {
	return CookieAttributes{
		Expires:  expires,
		Path:     o.CookiePath,
		Domain:   o.CookieDomain,
		Secure:   o.CookieSecure,
		HTTPOnly: o.CookieHTTPOnly,
	}
}
