// Package common contains shared constants and sentinel errors used across
// rememberme components.
package common

import "time"

const (
	// DefaultCookieName is the cookie (and gRPC metadata key) carrying the
	// remember-me secret.
	DefaultCookieName = "remembermecookie"

	// DefaultSecretLength is the number of characters in a generated secret.
	DefaultSecretLength = 64

	// DefaultTable is the storage table / key namespace for credential records.
	DefaultTable = "rememberme"

	// DefaultHashAlgorithm is used to fingerprint secrets before storage.
	DefaultHashAlgorithm = "sha256"

	// DefaultCookiePath is the path attribute of the remember-me cookie.
	DefaultCookiePath = "/"

	// DefaultExpiryYears is the horizon applied when no explicit expiry is set.
	DefaultExpiryYears = 10
)

// AlphanumericAlphabet is the default 62-character secret alphabet.
const AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RequestTimeout bounds a single store round-trip issued by the HTTP layer.
const RequestTimeout = 5 * time.Second

// IssuerKeyHeader carries the shared key that authorizes issuance. It is an
// HTTP header and, lowercased, a gRPC metadata key.
const IssuerKeyHeader = "X-Issuer-Key"
