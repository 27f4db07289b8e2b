//go:build !debug

package assert

// Enabled is false in release builds.
const Enabled = false

// Invariant is a no-op in release builds.
func Invariant(bool, string) {}
