// Package digest computes MD5, SHA-256 and SHA-512 digests of text and verifies
// a candidate digest against an input.
//
// [Set.SimulatedBcrypt] is a non-authoritative placeholder with the shape of a
// bcrypt string. Use the password package for credential storage.
//
// # What this package must NOT do
//
//   - Fail on any input string, including "" and arbitrary Unicode.
//   - Treat an unsupported algorithm passed to [Verify] as an error.
package digest
