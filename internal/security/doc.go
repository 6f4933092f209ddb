// Package security derives the engine's security posture report from plain
// configuration values.
//
// # Architecture boundaries
//
// The root package collects config, the installed denylist backend and lint
// findings into a [ReportInput]; this package only computes derived flags.
//
// # What this package must NOT do
//
//   - Import goCred or perform I/O.
//   - Carry secrets, digests or hashes in a report.
package security
