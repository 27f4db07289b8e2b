//go:build !linux

package procfs

// smackEnabled is always false off Linux; Smack is a Linux LSM.
func smackEnabled(string) bool {
	return false
}
