package cryptox

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Supported digest algorithm names.
const (
	SHA256     = "sha256"
	SHA384     = "sha384"
	SHA512     = "sha512"
	SHA3_256   = "sha3-256"
	SHA3_512   = "sha3-512"
	BLAKE2b256 = "blake2b-256"
	BLAKE2b512 = "blake2b-512"
)

var hashers = map[string]func() hash.Hash{
	SHA256:   sha256.New,
	SHA384:   sha512.New384,
	SHA512:   sha512.New,
	SHA3_256: sha3.New256,
	SHA3_512: sha3.New512,
	BLAKE2b256: func() hash.Hash {
		h, _ := blake2b.New256(nil) // only fails for an oversized key
		return h
	},
	BLAKE2b512: func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
}

// NormalizeAlgorithm lower-cases and trims an algorithm name, mapping the
// empty string to the default algorithm.
func NormalizeAlgorithm(algorithm string) string {
	a := strings.ToLower(strings.TrimSpace(algorithm))
	if a == "" {
		return common.DefaultHashAlgorithm
	}
	return a
}

// SupportsAlgorithm reports whether Digest accepts algorithm.
func SupportsAlgorithm(algorithm string) bool {
	_, ok := hashers[NormalizeAlgorithm(algorithm)]
	return ok
}

// DigestSize returns the hex-encoded digest length for algorithm, or 0 if the
// algorithm is unknown.
func DigestSize(algorithm string) int {
	newHash, ok := hashers[NormalizeAlgorithm(algorithm)]
	if !ok {
		return 0
	}
	return newHash().Size() * 2
}

// Digest returns the lowercase hex digest of secret under algorithm.
//
// The digest is unsalted and fast. That is only sound because secrets are long
// uniformly random strings; never use it for passwords.
func Digest(secret, algorithm string) (string, error) {
	newHash, ok := hashers[NormalizeAlgorithm(algorithm)]
	if !ok {
		return "", common.ErrUnsupportedHashAlgorithm
	}
	h := newHash()
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil)), nil
}
