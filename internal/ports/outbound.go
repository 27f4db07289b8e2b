package ports

import "context"

// TokenSource fills buffers with bytes suitable for bearer tokens.
// Implementations must draw from a cryptographically strong source.
//
// Error Contract:
//
//   - Read returns an error if p could not be filled completely
type TokenSource interface {
	Read(p []byte) error
}

// IdentityResolver captures the identity of a running process.
//
// Error Contract:
//
//   - Resolve returns domain.ErrResolutionFailed if any of the executable path,
//     MAC label or group lookups fails; no partial identity is returned
type IdentityResolver interface {
	Resolve(ctx context.Context, pid int) (ProcessIdentity, error)
}

// ProcessMonitor reports whether a process is still running.
type ProcessMonitor interface {
	Alive(ctx context.Context, pid int) (bool, error)
}

// AdapterFactory builds the outbound adapters used by the application
type AdapterFactory interface {
	CreateTokenSource() TokenSource
	CreateIdentityResolver() (IdentityResolver, error)
	CreateProcessMonitor() (ProcessMonitor, error)
}
