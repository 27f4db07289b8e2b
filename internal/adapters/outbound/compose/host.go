package compose

import (
	"fmt"

	"github.com/sufield/credjar/internal/adapters/outbound/entropy"
	"github.com/sufield/credjar/internal/adapters/outbound/liveness"
	"github.com/sufield/credjar/internal/adapters/outbound/procfs"
	"github.com/sufield/credjar/internal/config"
	"github.com/sufield/credjar/internal/ports"
)

// HostAdapterFactory creates adapters that read identity from the local host.
// Implements the AdapterFactory port.
type HostAdapterFactory struct {
	resolver config.ResolverSection
}

// NewHostAdapterFactory creates the factory for host-backed adapters
func NewHostAdapterFactory(resolver config.ResolverSection) *HostAdapterFactory {
	return &HostAdapterFactory{resolver: resolver}
}

func (f *HostAdapterFactory) CreateTokenSource() ports.TokenSource {
	return entropy.NewSource()
}

func (f *HostAdapterFactory) CreateIdentityResolver() (ports.IdentityResolver, error) {
	r, err := procfs.NewResolver(f.resolver.ProcRoot,
		procfs.WithMACMode(procfs.MACMode(f.resolver.MACMode)),
		procfs.WithSmackFS(f.resolver.SmackFS))
	if err != nil {
		return nil, fmt.Errorf("create procfs resolver: %w", err)
	}
	return r, nil
}

// CreateProcessMonitor reads the same proc root as the identity resolver
func (f *HostAdapterFactory) CreateProcessMonitor() (ports.ProcessMonitor, error) {
	m, err := liveness.NewMonitor(f.resolver.ProcRoot)
	if err != nil {
		return nil, fmt.Errorf("create liveness monitor: %w", err)
	}
	return m, nil
}

var _ ports.AdapterFactory = (*HostAdapterFactory)(nil)
