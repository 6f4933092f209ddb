// Package rate provides the Redis-backed throttle that caps how many passwords a
// single client may generate.
//
// # Window semantics
//
// Fixed-window counters: INCRBY + conditional EXPIRE on first hit. Key prefix:
//   - gcg: generated passwords per client id
//
// # What this package must NOT do
//
//   - Store anything derived from generated passwords.
//   - Be imported outside the goCred module.
package rate
