// Package denylist answers whether a candidate password is known to be
// compromised, beyond the small dictionary built into package strength.
//
// Entries are stored as [Fingerprint] values (SHA-256 of the lower-cased
// candidate), so matching ignores case and neither backend keeps plaintext.
//
// # Backends
//
//   - [Memory]: in-process set guarded by a RWMutex
//   - [RedisStore]: one Redis set shared across processes
//
// # What this package must NOT do
//
//   - Score passwords; callers pass the membership result to strength.AnalyzeWithOptions.
//   - Log candidates.
package denylist
