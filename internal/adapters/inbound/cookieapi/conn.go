package cookieapi

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/sufield/credjar/internal/ports"
)

// peerKey is an unexported type for context keys.
// See: https://go.dev/blog/context-keys
type peerKey struct{}

type peerErrorKey struct{}

// connWithPeer wraps a net.Conn with the credentials read at accept time
type connWithPeer struct {
	net.Conn
	peer ports.PeerCredentials
}

// peerListener reads SO_PEERCRED for each accepted connection
type peerListener struct {
	net.Listener
	logger *slog.Logger
}

func newPeerListener(inner net.Listener, logger *slog.Logger) net.Listener {
	return &peerListener{Listener: inner, logger: logger}
}

// Accept returns the next connection wrapped with its peer credentials.
// Connections whose credentials cannot be read are closed and skipped so a
// single bad peer does not stop http.Server.Serve.
func (l *peerListener) Accept() (net.Conn, error) {
	for {
		conn, err := l.Listener.Accept()
		if err != nil {
			return nil, err
		}

		peer, err := peerCredentials(conn)
		if err != nil {
			l.logger.Error("failed to read peer credentials",
				"remote_addr", conn.RemoteAddr(),
				"error", err)
			conn.Close()
			continue
		}

		l.logger.Debug("accepted connection",
			"pid", peer.PID,
			"uid", peer.UID,
			"gid", peer.GID)
		return &connWithPeer{Conn: conn, peer: peer}, nil
	}
}

// peerConnContext is the http.Server ConnContext hook. Unwrapped connections
// get an error in their context instead of credentials.
func peerConnContext(ctx context.Context, c net.Conn) context.Context {
	if wc, ok := c.(*connWithPeer); ok {
		return contextWithPeer(ctx, wc.peer)
	}
	return context.WithValue(ctx, peerErrorKey{},
		fmt.Errorf("connection %T carries no peer credentials", c))
}

func contextWithPeer(ctx context.Context, peer ports.PeerCredentials) context.Context {
	return context.WithValue(ctx, peerKey{}, peer)
}

// peerFromContext returns the caller's credentials or the reason they are missing
func peerFromContext(ctx context.Context) (ports.PeerCredentials, error) {
	if err, ok := ctx.Value(peerErrorKey{}).(error); ok {
		return ports.PeerCredentials{}, err
	}
	peer, ok := ctx.Value(peerKey{}).(ports.PeerCredentials)
	if !ok {
		return ports.PeerCredentials{}, fmt.Errorf("peer credentials not found in request context")
	}
	return peer, nil
}
