package rememberme

import "time"

// CookieAttributes are the transport attributes attached to the secret.
type CookieAttributes struct {
	Expires  time.Time
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
}

// Transport carries the raw secret between client and server for the
// lifetime of one request. Implementations are request-scoped and need not be
// safe for concurrent use.
type Transport interface {
	// Set hands value to the client under name.
	Set(name, value string, attrs CookieAttributes)

	// Get returns the value presented under name, honouring any Set or Clear
	// made earlier in the same request.
	Get(name string) (string, bool)

	// Clear removes name from the client and from the request-local view, so
	// a later Get in the same request reports it absent. Path and Domain in
	// attrs must match those used by Set for the client to drop the value.
	Clear(name string, attrs CookieAttributes)
}
