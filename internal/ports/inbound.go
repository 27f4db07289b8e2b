package ports

import (
	"context"

	"github.com/sufield/credjar/internal/domain"
)

// CredentialStore is the inbound port for issuing and querying cookies.
//
// Error Contract:
//
//   - Issue returns domain.ErrResolutionFailed if the identity of pid cannot be captured
//   - Issue returns domain.ErrGenerationExhausted if no unique token can be drawn
//   - Find and RemoveAll return domain.ErrUnknownCriterion for an undefined criterion
type CredentialStore interface {
	// Issue returns the live credential for pid, creating one if none exists
	Issue(ctx context.Context, pid int) (domain.Credential, error)

	// Find returns some stored credential matching pattern under criterion.
	// Callers must not rely on which one when several match.
	Find(criterion domain.Criterion, pattern domain.Pattern) (domain.Credential, bool, error)

	// RemoveAll removes every credential matching pattern under criterion and
	// returns how many were removed
	RemoveAll(criterion domain.Criterion, pattern domain.Pattern) (int, error)
}
