package domain

import (
	"os"
	"strconv"
	"testing"
	"testing/quick"
)

// defaultPBTConfig returns standard config for property-based tests
func defaultPBTConfig() *quick.Config {
	maxCount := 2000
	if v := os.Getenv("PBT_MAX_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxCount = n
		}
	}
	return &quick.Config{MaxCount: maxCount}
}

// small folds generated ids into a narrow range so overlaps actually occur
func small(in []int8) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v) % 16
	}
	return out
}

func TestPBT_GroupsOverlapSymmetric(t *testing.T) {
	prop := func(a, b []int8) bool {
		x, y := small(a), small(b)
		return GroupsOverlap(x, y) == GroupsOverlap(y, x)
	}
	if err := quick.Check(prop, defaultPBTConfig()); err != nil {
		t.Error(err)
	}
}

func TestPBT_GroupsOverlapMatchesNaiveIntersection(t *testing.T) {
	prop := func(a, b []int8) bool {
		x, y := small(a), small(b)
		naive := false
		for _, i := range x {
			for _, j := range y {
				if i == j {
					naive = true
				}
			}
		}
		return GroupsOverlap(x, y) == naive
	}
	if err := quick.Check(prop, defaultPBTConfig()); err != nil {
		t.Error(err)
	}
}

func TestPBT_MatchesGroupOverlapSymmetricAcrossCredentials(t *testing.T) {
	prop := func(a, b []int8) bool {
		ca := MustNewCredential(Token{1}, 1, "/a", "a", small(a))
		cb := MustNewCredential(Token{2}, 2, "/b", "b", small(b))
		ab, err1 := ByGroupOverlap.Matches(ca.Pattern(), cb)
		ba, err2 := ByGroupOverlap.Matches(cb.Pattern(), ca)
		return err1 == nil && err2 == nil && ab == ba
	}
	if err := quick.Check(prop, defaultPBTConfig()); err != nil {
		t.Error(err)
	}
}

func TestPBT_NormalizeGroupsIdempotent(t *testing.T) {
	prop := func(a []int8) bool {
		once := NormalizeGroups(small(a))
		twice := NormalizeGroups(once)
		if len(once) != len(twice) {
			return false
		}
		for i := range once {
			if once[i] != twice[i] || (i > 0 && once[i-1] >= once[i]) {
				return false
			}
		}
		return true
	}
	if err := quick.Check(prop, defaultPBTConfig()); err != nil {
		t.Error(err)
	}
}
