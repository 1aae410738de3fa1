// Package common defines shared constants and sentinel errors used across
// rememberme components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrStorage wraps any failure reported by a credential store. It is never
	// retried internally.
	ErrStorage = errors.New("storage error")

	// ErrConfiguration is returned when a component is constructed without a
	// required collaborator or with unusable options.
	ErrConfiguration = errors.New("configuration error")

	// Issuance errors.
	ErrEmptyUserID              = errors.New("user id must not be empty")
	ErrInsecureRandom           = errors.New("secure random source unavailable")
	ErrInvalidSecretParams      = errors.New("invalid secret length or alphabet")
	ErrUnsupportedHashAlgorithm = errors.New("unsupported hash algorithm")

	// ErrorUnauthorized is used by the transport layers when no valid
	// remember-me credential accompanies a request.
	ErrorUnauthorized = errors.New("unauthorized")
)
