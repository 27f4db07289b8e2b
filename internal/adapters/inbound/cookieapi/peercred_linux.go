//go:build linux

package cookieapi

import (
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/sys/unix"

	"github.com/sufield/credjar/internal/ports"
)

// peerCredentials reads the kernel-verified pid, uid and gid of the process on
// the other end of a Unix socket. The caller cannot forge these values.
func peerCredentials(conn net.Conn) (ports.PeerCredentials, error) {
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		return ports.PeerCredentials{}, fmt.Errorf("connection is %T, not a Unix socket", conn)
	}

	raw, err := uc.SyscallConn()
	if err != nil {
		return ports.PeerCredentials{}, fmt.Errorf("raw connection: %w", err)
	}

	var (
		ucred   *unix.Ucred
		credErr error
	)
	if err := raw.Control(func(fd uintptr) {
		ucred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	}); err != nil {
		return ports.PeerCredentials{}, fmt.Errorf("access socket descriptor: %w", err)
	}
	if credErr != nil {
		return ports.PeerCredentials{}, fmt.Errorf("SO_PEERCRED: %w", credErr)
	}
	if ucred == nil || ucred.Pid <= 0 {
		return ports.PeerCredentials{}, fmt.Errorf("invalid peer credentials")
	}

	return ports.PeerCredentials{
		PID: int(ucred.Pid),
		UID: int(ucred.Uid),
		GID: int(ucred.Gid),
	}, nil
}

func checkPlatform(*slog.Logger) error { return nil }
