//go:build linux

package procfs

import "golang.org/x/sys/unix"

// smackMagic is SMACK_MAGIC from linux/magic.h
const smackMagic = 0x43415d53

// smackEnabled reports whether smackfs is mounted at path.
func smackEnabled(path string) bool {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return false
	}
	return uint32(st.Type) == smackMagic
}
