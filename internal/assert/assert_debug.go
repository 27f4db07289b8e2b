//go:build debug

package assert

import "fmt"

// Enabled reports whether invariant checks run. Guard expensive conditions
// with it so release builds skip computing them.
const Enabled = true

// Invariant panics with msg when ok is false. Debug builds only.
// Use it for internal consistency of the credential table, never for
// validating caller input.
//
//	if assert.Enabled {
//		assert.Invariant(t.pidCount(pid) <= 1, "at most one credential per pid")
//	}
func Invariant(ok bool, msg string) {
	if !ok {
		panic(fmt.Sprintf("INVARIANT VIOLATION: %s", msg))
	}
}
