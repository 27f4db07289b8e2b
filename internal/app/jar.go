package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sufield/credjar/internal/domain"
	"github.com/sufield/credjar/internal/ports"
)

// DefaultMaxAttempts bounds the token collision retry loop.
const DefaultMaxAttempts = 8

// CookieJar binds cookies to identity snapshots of calling processes.
//
// All structural operations hold a single mutex. Entropy and identity lookups
// run outside the lock; the pid re-check, collision check and insertion run
// as one critical section so concurrent Issue calls cannot store duplicate
// tokens or two credentials for the same pid.
type CookieJar struct {
	tokens      ports.TokenSource
	resolver    ports.IdentityResolver
	logger      *slog.Logger
	maxAttempts int

	mu    sync.RWMutex
	table table
}

// JarOption configures a CookieJar
type JarOption func(*CookieJar)

// WithJarLogger sets a structured logger for the jar.
// If logger is nil, uses io.Discard for silent operation
func WithJarLogger(logger *slog.Logger) JarOption {
	return func(j *CookieJar) {
		if logger != nil {
			j.logger = logger
		} else {
			j.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
}

// WithMaxAttempts sets how many token candidates Issue draws before giving up.
// Values below 1 are ignored.
func WithMaxAttempts(n int) JarOption {
	return func(j *CookieJar) {
		if n >= 1 {
			j.maxAttempts = n
		}
	}
}

// NewCookieJar creates an empty jar.
func NewCookieJar(tokens ports.TokenSource, resolver ports.IdentityResolver, opts ...JarOption) (*CookieJar, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token source cannot be nil")
	}
	if resolver == nil {
		return nil, fmt.Errorf("identity resolver cannot be nil")
	}

	j := &CookieJar{
		tokens:      tokens,
		resolver:    resolver,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Issue returns the credential for pid, creating it if the jar holds none.
//
// Flow: existing entry? → resolve identity → draw token → (locked) re-check pid,
// check collision, insert. On any failure the jar is left unchanged.
func (j *CookieJar) Issue(ctx context.Context, pid int) (domain.Credential, error) {
	if existing, ok := j.lookupPID(pid); ok {
		j.logger.Debug("credential exists for pid", "pid", pid)
		return existing, nil
	}

	identity, err := j.resolver.Resolve(ctx, pid)
	if err != nil {
		j.logger.Debug("identity resolution failed", "pid", pid, "error", err)
		if errors.Is(err, domain.ErrResolutionFailed) {
			return domain.Credential{}, err
		}
		return domain.Credential{}, fmt.Errorf("%w: pid %d: %v", domain.ErrResolutionFailed, pid, err)
	}

	var lastErr error
	for attempt := 1; attempt <= j.maxAttempts; attempt++ {
		var tok domain.Token
		if err := j.tokens.Read(tok[:]); err != nil {
			lastErr = err
			j.logger.Warn("token source failed", "attempt", attempt, "error", err)
			continue
		}

		cred, inserted, err := j.insertUnique(tok, pid, identity)
		if err != nil {
			return domain.Credential{}, err
		}
		if inserted {
			j.logger.Debug("credential issued",
				"pid", pid,
				"path", cred.Path(),
				"label", cred.Label(),
				"groups", cred.Groups(),
				"attempt", attempt)
			return cred, nil
		}
		if !cred.IsZero() {
			// Another caller issued for this pid while we were resolving
			return cred, nil
		}
		lastErr = errors.New("token collision")
		j.logger.Debug("token is not unique", "pid", pid, "attempt", attempt)
	}

	if lastErr != nil {
		return domain.Credential{}, fmt.Errorf("%w: pid %d after %d attempts: %v",
			domain.ErrGenerationExhausted, pid, j.maxAttempts, lastErr)
	}
	return domain.Credential{}, fmt.Errorf("%w: pid %d after %d attempts",
		domain.ErrGenerationExhausted, pid, j.maxAttempts)
}

// insertUnique is the issuance critical section.
//
// Returns (existing, false, nil) if pid gained a credential meanwhile,
// (zero, false, nil) on token collision and (new, true, nil) on insertion.
func (j *CookieJar) insertUnique(tok domain.Token, pid int, identity ports.ProcessIdentity) (domain.Credential, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if existing, ok, _ := j.table.find(domain.ByPID, domain.Pattern{PID: pid}); ok {
		return existing, false, nil
	}
	if j.table.hasToken(tok) {
		return domain.Credential{}, false, nil
	}

	cred, err := domain.NewCredential(tok, pid, identity.Path, identity.Label, identity.Groups)
	if err != nil {
		return domain.Credential{}, false, fmt.Errorf("%w: pid %d: %v", domain.ErrResolutionFailed, pid, err)
	}
	j.table.insert(cred)
	return cred, true, nil
}

func (j *CookieJar) lookupPID(pid int) (domain.Credential, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	c, ok, _ := j.table.find(domain.ByPID, domain.Pattern{PID: pid})
	return c, ok
}

// Find returns the first credential in table order that matches pattern under
// criterion. Table order is not stable across removals; when several entries
// match, callers must treat the result as "some matching entry".
func (j *CookieJar) Find(criterion domain.Criterion, pattern domain.Pattern) (domain.Credential, bool, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	c, ok, err := j.table.find(criterion, pattern)
	if err != nil {
		j.logger.Error("find called with invalid criterion", "criterion", criterion.String())
		return domain.Credential{}, false, err
	}
	return c, ok, nil
}

// RemoveAll removes every credential matching pattern under criterion.
// Removing from an empty jar, or matching nothing, is not an error.
func (j *CookieJar) RemoveAll(criterion domain.Criterion, pattern domain.Pattern) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	n, err := j.table.removeAll(criterion, pattern)
	if err != nil {
		j.logger.Error("remove called with invalid criterion", "criterion", criterion.String())
		return n, err
	}
	if n > 0 {
		j.logger.Debug("credentials removed", "criterion", criterion.String(), "count", n)
	}
	return n, nil
}

// Len returns the number of live credentials.
func (j *CookieJar) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.table.len()
}

// Snapshot returns a copy of every live credential in table order.
func (j *CookieJar) Snapshot() []domain.Credential {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.table.snapshot()
}

// PIDs returns the distinct pids holding a credential.
func (j *CookieJar) PIDs() []int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	seen := make(map[int]struct{}, j.table.len())
	pids := make([]int, 0, j.table.len())
	for _, c := range j.table.entries {
		if _, ok := seen[c.PID()]; ok {
			continue
		}
		seen[c.PID()] = struct{}{}
		pids = append(pids, c.PID())
	}
	return pids
}

var _ ports.CredentialStore = (*CookieJar)(nil)
