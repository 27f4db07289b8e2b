//go:build !linux

package cookieapi

import (
	"fmt"
	"log/slog"
	"net"
	"runtime"

	"github.com/sufield/credjar/internal/ports"
)

// peerCredentials is not implemented off Linux. Never fall back to
// caller-supplied identity: it could be forged.
func peerCredentials(net.Conn) (ports.PeerCredentials, error) {
	return ports.PeerCredentials{}, fmt.Errorf("peer credentials not supported on %s/%s", runtime.GOOS, runtime.GOARCH)
}

func checkPlatform(logger *slog.Logger) error {
	platform := runtime.GOOS + "/" + runtime.GOARCH
	logger.Warn("cookie API cannot start on this platform",
		"platform", platform,
		"note", "SO_PEERCRED is required to identify callers")
	return fmt.Errorf("unsupported platform %s: cookie API requires Linux", platform)
}
