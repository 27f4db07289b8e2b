// Package app contains the credential jar and the application's composition root.
//
// Responsibilities:
//
//   - CookieJar (jar.go, table.go): the entry table of live credentials,
//     issuance with pid dedup and bounded token retry, multi-criterion
//     lookup and removal. One RWMutex guards the table.
//   - Reaper (reaper.go): removes credentials of exited processes on a timer.
//   - Bootstrap (bootstrap.go): builds the jar and reaper from an AdapterFactory
//     and returns a wired Application.
//
// Architectural notes:
//
//   - Keep adapter-specific I/O out of this package; /proc access, entropy and
//     liveness checks arrive through the ports package.
//   - Credentials returned by the jar are immutable copies and stay valid after
//     the entry is removed.
package app
