// Package domain contains the domain model for the credential jar.
//
// This package is the CORE of the hexagonal architecture - it defines the cookie,
// the identity snapshot bound to it and the match rules used for lookup, with
// ZERO dependencies on external frameworks or infrastructure.
//
// Hexagonal Architecture Boundaries:
//
//   - Domain NEVER imports from: internal/adapters, internal/ports, internal/app
//   - Domain ONLY imports from: standard library, other domain types
//   - Domain does NOT: perform I/O, read /proc, draw entropy
//
// Files and types:
//
//   - token.go: Token, the fixed-size opaque cookie, hex encoded on the wire.
//   - credential.go: Credential, the immutable snapshot (token, pid,
//     executable path, MAC label, group set), and Pattern, a partially
//     populated credential used for lookup.
//   - criterion.go: Criterion, the field or relation a lookup matches on.
//     Group overlap is a non-empty intersection, not equality.
//   - errors.go: sentinel errors for issuance, resolution and misuse.
package domain
