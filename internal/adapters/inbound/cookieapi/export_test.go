package cookieapi

import (
	"context"

	"github.com/sufield/credjar/internal/ports"
)

// ContextWithPeer attaches peer credentials the way the listener does
func ContextWithPeer(ctx context.Context, peer ports.PeerCredentials) context.Context {
	return contextWithPeer(ctx, peer)
}

var StatusFor = statusFor
