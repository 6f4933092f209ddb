// Package generator synthesizes passwords from a character-class [Policy].
//
// Alphabets are concatenated in the fixed order upper, lower, digits, special and
// filtered by the similar/ambiguous exclusion sets. Every draw comes from an
// io.Reader that must be cryptographically secure; [New] defaults to
// crypto/rand.Reader.
//
// # What this package must NOT do
//
//   - Use math/rand or any other non-cryptographic source.
//   - Persist, log, or otherwise retain generated passwords.
package generator
