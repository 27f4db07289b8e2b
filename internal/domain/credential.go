package domain

import (
	"fmt"
	"slices"
)

const (
	// LabelDisabled is stored as the MAC label when the host runs without Smack.
	LabelDisabled = "smack_disabled"

	// MaxLabelLen is the longest MAC label the kernel accepts.
	MaxLabelLen = 255
)

// Credential is the identity snapshot bound to a cookie.
//
// Immutable after construction - all fields are unexported and read-only via accessors.
// Accessors hand out copies, so a Credential returned from the jar stays valid
// regardless of later insertions or removals.
type Credential struct {
	token  Token
	pid    int
	path   string
	label  string
	groups []int // sorted, no duplicates
}

// NewCredential creates a credential with validation.
//
// Validations:
//
//   - pid must be > 0
//   - path must not be empty
//   - label must not be empty and at most MaxLabelLen bytes
//
// groups are treated as a set: the stored copy is sorted and deduplicated.
// Returns ErrCredentialInvalid if validation fails.
func NewCredential(token Token, pid int, path, label string, groups []int) (Credential, error) {
	if pid <= 0 {
		return Credential{}, fmt.Errorf("%w: pid must be > 0 (got %d)", ErrCredentialInvalid, pid)
	}
	if path == "" {
		return Credential{}, fmt.Errorf("%w: path cannot be empty", ErrCredentialInvalid)
	}
	if label == "" {
		return Credential{}, fmt.Errorf("%w: label cannot be empty", ErrCredentialInvalid)
	}
	if len(label) > MaxLabelLen {
		return Credential{}, fmt.Errorf("%w: label longer than %d bytes", ErrCredentialInvalid, MaxLabelLen)
	}

	return Credential{
		token:  token,
		pid:    pid,
		path:   path,
		label:  label,
		groups: NormalizeGroups(groups),
	}, nil
}

// MustNewCredential creates a credential or panics on validation error.
// Convenient for tests and fixtures.
func MustNewCredential(token Token, pid int, path, label string, groups []int) Credential {
	c, err := NewCredential(token, pid, path, label, groups)
	if err != nil {
		panic(err)
	}
	return c
}

// Token returns the cookie bound to this credential.
func (c Credential) Token() Token { return c.token }

// PID returns the process the snapshot was captured for.
func (c Credential) PID() int { return c.pid }

// Path returns the executable path at capture time.
// The process may have exec'd a different binary since.
func (c Credential) Path() string { return c.path }

// Label returns the MAC label, or LabelDisabled.
func (c Credential) Label() string { return c.label }

// Groups returns a copy of the supplementary group ids in ascending order.
func (c Credential) Groups() []int {
	return slices.Clone(c.groups)
}

// IsZero reports whether c was never constructed.
func (c Credential) IsZero() bool {
	return c.pid == 0 && c.path == "" && c.label == "" && c.token.IsZero()
}

// Pattern returns the credential's fields as a lookup pattern.
func (c Credential) Pattern() Pattern {
	return Pattern{
		Token:  c.token,
		PID:    c.pid,
		Path:   c.path,
		Label:  c.label,
		Groups: slices.Clone(c.groups),
	}
}

// String returns a representation suitable for logging.
// Only a prefix of the token is printed.
//
// Format: credential{token=0a1b2c3d…,pid=1234,path="/usr/bin/app",label="app_t",groups=[10 20]}
func (c Credential) String() string {
	if c.IsZero() {
		return "credential<zero>"
	}
	return fmt.Sprintf("credential{token=%s…,pid=%d,path=%q,label=%q,groups=%v}",
		c.token.String()[:8], c.pid, c.path, c.label, c.groups)
}

// Pattern is a partially populated credential used for lookup and removal.
// Only the field selected by the Criterion is consulted.
type Pattern struct {
	Token  Token
	PID    int
	Path   string
	Label  string
	Groups []int
}

// NormalizeGroups returns a sorted copy of groups with duplicates removed.
// A nil or empty input yields an empty, non-nil slice.
func NormalizeGroups(groups []int) []int {
	out := slices.Clone(groups)
	if out == nil {
		out = []int{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
