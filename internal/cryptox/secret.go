// Package cryptox holds the cryptographic primitives behind remember-me
// tokens: secret generation and one-way digests of secrets.
package cryptox

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rememberme/internal/common"
)

// randReader is a seam for testing failures of the secure random source.
var randReader io.Reader = rand.Reader

// GenerateSecret returns a string of length characters drawn uniformly from
// alphabet using the cryptographically secure random source.
//
// Bytes that would bias the distribution are rejected and redrawn, so every
// alphabet symbol is equally likely. If the random source fails, the function
// returns common.ErrInsecureRandom and no partial secret; there is no fallback
// to a weaker generator.
//
// Example:
//
//	s, err := GenerateSecret(64, common.AlphanumericAlphabet)
//	if err != nil {
//	    return err
//	}
func GenerateSecret(length int, alphabet string) (string, error) {
	if length <= 0 || !ValidAlphabet(alphabet) {
		return "", common.ErrInvalidSecretParams
	}

	n := len(alphabet)
	// largest multiple of n not exceeding 256; bytes at or above it are rejected
	limit := 256 - 256%n

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+8)

	for len(out) < length {
		if _, err := io.ReadFull(randReader, buf); err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrInsecureRandom, err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

// ValidAlphabet reports whether alphabet has between 2 and 256 distinct bytes.
func ValidAlphabet(alphabet string) bool {
	if len(alphabet) < 2 || len(alphabet) > 256 {
		return false
	}
	var seen [256]bool
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}
