package digest

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	simulatedPrefix     = "$2b$12$"
	simulatedSaltBytes  = 16
	simulatedSaltChars  = 22
	simulatedHashChars  = 31
	simulatedIterations = 4096
	simulatedKeyBytes   = 32
)

// SimulatedBcrypt renders a bcrypt-shaped placeholder for input using a fresh
// salt from crypto/rand.
func SimulatedBcrypt(input string) string {
	// crypto/rand.Reader never fails.
	s, _ := SimulatedBcryptFrom(rand.Reader, input)
	return s
}

// SimulatedBcryptFrom is SimulatedBcrypt with the 16 salt bytes read from r.
// A nil r selects crypto/rand.Reader.
func SimulatedBcryptFrom(r io.Reader, input string) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	raw := make([]byte, simulatedSaltBytes)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	return SimulatedBcryptWithSalt(input, hex.EncodeToString(raw)), nil
}

// SimulatedBcryptWithSalt derives PBKDF2-HMAC-SHA256 (4096 iterations, 32-byte
// key) of input keyed by the salt text and renders
// "$2b$12$" + salt[:22] + hex(key)[:31]. Salts shorter than 22 characters are
// used whole.
func SimulatedBcryptWithSalt(input, salt string) string {
	key := pbkdf2.Key([]byte(input), []byte(salt), simulatedIterations, simulatedKeyBytes, sha256.New)
	return simulatedPrefix + truncate(salt, simulatedSaltChars) + hex.EncodeToString(key)[:simulatedHashChars]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
