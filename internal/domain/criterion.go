package domain

import (
	"fmt"
	"strings"
)

// Criterion selects the field, or relation, used to match a Pattern against
// stored credentials.
type Criterion int

const (
	// ByToken matches on byte-exact token equality.
	ByToken Criterion = iota + 1
	// ByPID matches on pid equality.
	ByPID
	// ByPath matches on executable path equality.
	ByPath
	// ByLabel matches on MAC label equality.
	ByLabel
	// ByGroupOverlap matches when the pattern and the credential share at least one group id.
	// It is a permissive rule meant for coarse group-based authorization, not set equality.
	ByGroupOverlap
)

var criterionNames = map[Criterion]string{
	ByToken:        "token",
	ByPID:          "pid",
	ByPath:         "path",
	ByLabel:        "label",
	ByGroupOverlap: "groups",
}

// ParseCriterion maps a criterion name (token, pid, path, label, groups) to its value.
func ParseCriterion(name string) (Criterion, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for c, s := range criterionNames {
		if s == n {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCriterion, name)
}

// Valid reports whether c is one of the defined criteria.
func (c Criterion) Valid() bool {
	_, ok := criterionNames[c]
	return ok
}

func (c Criterion) String() string {
	if s, ok := criterionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("criterion(%d)", int(c))
}

// Matches applies the match rule of c to pattern and cred.
// Returns ErrUnknownCriterion if c is not a defined criterion.
func (c Criterion) Matches(pattern Pattern, cred Credential) (bool, error) {
	switch c {
	case ByToken:
		return pattern.Token.Equal(cred.token), nil
	case ByPID:
		return pattern.PID == cred.pid, nil
	case ByPath:
		return pattern.Path == cred.path, nil
	case ByLabel:
		return pattern.Label == cred.label, nil
	case ByGroupOverlap:
		return GroupsOverlap(pattern.Groups, cred.groups), nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCriterion, c)
	}
}

// GroupsOverlap reports whether a and b share at least one group id.
// Symmetric; an empty set overlaps nothing.
func GroupsOverlap(a, b []int) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return false
	}
	seen := make(map[int]struct{}, len(a))
	for _, g := range a {
		seen[g] = struct{}{}
	}
	for _, g := range b {
		if _, ok := seen[g]; ok {
			return true
		}
	}
	return false
}
