package cryptox

import "crypto/subtle"

// KeyMatches reports whether presented equals expected in constant time. An
// empty expected key matches nothing.
func KeyMatches(presented, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
