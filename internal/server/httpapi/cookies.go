package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
)

// CookieTransport carries remember-me secrets in HTTP cookies for the span of
// one request. Values written with Set or removed with Clear are visible to
// later Get calls on the same request.
type CookieTransport struct {
	w     http.ResponseWriter
	r     *http.Request
	local map[string]*string // nil entry: cleared during this request
}

var _ rememberme.Transport = (*CookieTransport)(nil)

func NewCookieTransport(w http.ResponseWriter, r *http.Request) *CookieTransport {
	return &CookieTransport{w: w, r: r, local: make(map[string]*string)}
}

func (t *CookieTransport) Set(name, value string, attrs rememberme.CookieAttributes) {
	c := newCookie(name, value, attrs)
	c.Expires = attrs.Expires
	http.SetCookie(t.w, c)
	t.local[name] = &value
}

func (t *CookieTransport) Get(name string) (string, bool) {
	if v, ok := t.local[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := t.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (t *CookieTransport) Clear(name string, attrs rememberme.CookieAttributes) {
	c := newCookie(name, "", attrs)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(t.w, c)
	t.local[name] = nil
}

func newCookie(name, value string, attrs rememberme.CookieAttributes) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     attrs.Path,
		Domain:   attrs.Domain,
		Secure:   attrs.Secure,
		HttpOnly: attrs.HTTPOnly,
		SameSite: http.SameSiteLaxMode,
	}
}
