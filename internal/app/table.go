package app

import (
	"github.com/sufield/credjar/internal/assert"
	"github.com/sufield/credjar/internal/domain"
)

// table holds live credentials in insertion order. It is not synchronized;
// CookieJar owns the lock.
//
// Removal swaps the last entry into the freed slot, so the order of surviving
// entries is only insertion order until the first removal.
type table struct {
	entries []domain.Credential
}

// insert appends c. Callers check pid and token uniqueness first; debug
// builds verify the token half.
func (t *table) insert(c domain.Credential) {
	if assert.Enabled {
		assert.Invariant(!t.hasToken(c.Token()), "token already in table")
	}
	t.entries = append(t.entries, c)
}

// find returns the first entry, in table order, matching pattern under criterion.
func (t *table) find(criterion domain.Criterion, pattern domain.Pattern) (domain.Credential, bool, error) {
	if !criterion.Valid() {
		return domain.Credential{}, false, unknownCriterion(criterion)
	}
	for _, c := range t.entries {
		ok, err := criterion.Matches(pattern, c)
		if err != nil {
			return domain.Credential{}, false, err
		}
		if ok {
			return c, true, nil
		}
	}
	return domain.Credential{}, false, nil
}

// removeAll drops every entry matching pattern under criterion and returns the count.
func (t *table) removeAll(criterion domain.Criterion, pattern domain.Pattern) (int, error) {
	if !criterion.Valid() {
		return 0, unknownCriterion(criterion)
	}
	removed := 0
	for i := 0; i < len(t.entries); {
		ok, err := criterion.Matches(pattern, t.entries[i])
		if err != nil {
			return removed, err
		}
		if !ok {
			i++
			continue
		}
		last := len(t.entries) - 1
		if i != last {
			t.entries[i] = t.entries[last]
		}
		t.entries[last] = domain.Credential{}
		t.entries = t.entries[:last]
		removed++
	}
	return removed, nil
}

func (t *table) hasToken(tok domain.Token) bool {
	for _, c := range t.entries {
		if c.Token().Equal(tok) {
			return true
		}
	}
	return false
}

func (t *table) len() int {
	return len(t.entries)
}

// snapshot returns a copy of the entries slice. Credentials are immutable so a
// shallow copy is enough.
func (t *table) snapshot() []domain.Credential {
	out := make([]domain.Credential, len(t.entries))
	copy(out, t.entries)
	return out
}
