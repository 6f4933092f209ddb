// Package goCred scores, generates and digests passwords, and hashes stored
// credentials with Argon2id.
//
// The core lives in pure sub-packages: [strength] for rule-based scoring,
// [generator] for policy-driven generation, [digest] for MD5/SHA-2 digests and
// [password] for Argon2id. This package wraps them in an [Engine] that adds a
// compromised-password denylist, a Redis generation throttle, metrics and
// asynchronous audit. Engine methods are safe to call from multiple goroutines
// after [Builder.Build].
//
// # Architecture boundaries
//
// Redis clients, limiter keys and the audit dispatcher stay behind the Engine.
// Build performs no I/O; only Analyze, Generate*, HashCredential and
// ExtendDenylist may reach Redis, at most once per call.
//
// # What this package must NOT do
//
//   - Log or audit plaintext passwords, generated passwords, digests or hashes.
//   - Treat the simulated bcrypt field of [digest.Set] as a credential hash.
//   - Import any sub-package that re-imports goCred.
package goCred
