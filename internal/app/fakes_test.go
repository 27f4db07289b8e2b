package app

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/sufield/credjar/internal/domain"
	"github.com/sufield/credjar/internal/ports"
)

// fakeResolver returns canned identities keyed by pid
type fakeResolver struct {
	mu         sync.Mutex
	identities map[int]ports.ProcessIdentity
	calls      int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{identities: make(map[int]ports.ProcessIdentity)}
}

func (r *fakeResolver) set(pid int, path, label string, groups ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities[pid] = ports.ProcessIdentity{Path: path, Label: label, Groups: groups}
}

func (r *fakeResolver) Resolve(_ context.Context, pid int) (ports.ProcessIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	id, ok := r.identities[pid]
	if !ok {
		return ports.ProcessIdentity{}, errors.New("no such process")
	}
	return id, nil
}

// counterTokens yields distinct tokens derived from a counter
type counterTokens struct {
	mu sync.Mutex
	n  uint64
}

func (c *counterTokens) Read(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	clear(p)
	binary.BigEndian.PutUint64(p[len(p)-8:], c.n)
	return nil
}

// scriptedTokens replays a fixed list of tokens, repeating the last one
type scriptedTokens struct {
	mu     sync.Mutex
	tokens []domain.Token
	reads  int
}

func (s *scriptedTokens) Read(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := min(s.reads, len(s.tokens)-1)
	s.reads++
	copy(p, s.tokens[i][:])
	return nil
}

// brokenTokens always fails
type brokenTokens struct{}

func (brokenTokens) Read([]byte) error { return errors.New("entropy unavailable") }

// fakeMonitor reports pids in dead as exited
type fakeMonitor struct {
	mu   sync.Mutex
	dead map[int]bool
	err  map[int]error
}

func newFakeMonitor() *fakeMonitor {
	return &fakeMonitor{dead: make(map[int]bool), err: make(map[int]error)}
}

func (m *fakeMonitor) kill(pid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dead[pid] = true
}

func (m *fakeMonitor) Alive(_ context.Context, pid int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err[pid]; err != nil {
		return false, err
	}
	return !m.dead[pid], nil
}

// fakeFactory hands out the fakes above
type fakeFactory struct {
	tokens      ports.TokenSource
	resolver    ports.IdentityResolver
	resolverErr error
	monitor     ports.ProcessMonitor
	monitorErr  error
}

func (f *fakeFactory) CreateTokenSource() ports.TokenSource { return f.tokens }

func (f *fakeFactory) CreateIdentityResolver() (ports.IdentityResolver, error) {
	return f.resolver, f.resolverErr
}

func (f *fakeFactory) CreateProcessMonitor() (ports.ProcessMonitor, error) {
	return f.monitor, f.monitorErr
}

func newTestJar(resolver ports.IdentityResolver, opts ...JarOption) *CookieJar {
	jar, err := NewCookieJar(&counterTokens{}, resolver, opts...)
	if err != nil {
		panic(err)
	}
	return jar
}

// recordingTokens fills each buffer with a fixed byte and records its length
type recordingTokens struct {
	mu   sync.Mutex
	fill byte
	lens []int
}

func (r *recordingTokens) Read(p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lens = append(r.lens, len(p))
	for i := range p {
		p[i] = r.fill
	}
	return nil
}
