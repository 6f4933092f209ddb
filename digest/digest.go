package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strings"
)

// ErrUnsupportedAlgorithm is returned by ParseAlgorithm and Sum for unknown names.
var ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

// Algorithm names a verifiable digest.
type Algorithm string

// Supported algorithms.
const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
)

// Algorithms lists the verifiable algorithms in Set field order.
var Algorithms = []Algorithm{MD5, SHA256, SHA512}

// ParseAlgorithm resolves name case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch alg := Algorithm(strings.ToLower(name)); alg {
	case MD5, SHA256, SHA512:
		return alg, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	default:
		return nil
	}
}

// Set is every digest of one input.
type Set struct {
	Original string `json:"original"`
	MD5      string `json:"md5"`
	SHA256   string `json:"sha256"`
	SHA512   string `json:"sha512"`
	// SimulatedBcrypt only has the shape of a bcrypt string. It is salted with
	// fresh randomness on every call, cannot be verified, and must never be
	// used to store credentials.
	SimulatedBcrypt string `json:"simulated_bcrypt"`
}

// Get returns the digest stored for alg, or "" for an unknown algorithm.
func (s Set) Get(alg Algorithm) string {
	switch alg {
	case MD5:
		return s.MD5
	case SHA256:
		return s.SHA256
	case SHA512:
		return s.SHA512
	default:
		return ""
	}
}

// Compute digests the UTF-8 bytes of input. It never fails.
func Compute(input string) Set {
	s := Standard(input)
	s.SimulatedBcrypt = SimulatedBcrypt(input)
	return s
}

// Standard is Compute without the simulated field.
func Standard(input string) Set {
	return Set{
		Original: input,
		MD5:      sum(MD5, input),
		SHA256:   sum(SHA256, input),
		SHA512:   sum(SHA512, input),
	}
}

// Sum returns the lower-case hex digest of input under the named algorithm.
func Sum(algorithm, input string) (string, error) {
	alg, err := ParseAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	return sum(alg, input), nil
}

func sum(alg Algorithm, input string) string {
	h := alg.newHash()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify recomputes the named digest of input and compares it with digest
// exactly. Unsupported algorithm names yield false.
func Verify(input, digest, algorithm string) bool {
	want, err := Sum(algorithm, input)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(digest)) == 1
}
