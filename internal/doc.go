// Package internal contains helper utilities that are intentionally private to goCred,
// chiefly the bounded secure random draws behind password generation.
//
// Every helper takes an io.Reader so callers can inject a deterministic source in
// tests; a nil reader means crypto/rand.Reader.
//
// # Sub-packages
//
//   - rate: Redis-backed fixed-window throttle for password generation
//   - security: posture report behind Engine.SecurityReport
//
// # What this package must NOT do
//
//   - Export types that appear in the public goCred API.
//   - Fall back to math/rand under any circumstances.
package internal
