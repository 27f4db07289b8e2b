package procfs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrGroupsMissing indicates the status file has no Groups line
	ErrGroupsMissing = errors.New("status has no Groups line")

	// ErrGroupsMalformed indicates the Groups line holds something other than group ids
	ErrGroupsMalformed = errors.New("malformed Groups line")
)

const (
	groupsPrefix  = "Groups:"
	maxStatusLine = 1 << 20
)

// ParseStatusGroups extracts the supplementary group ids from the content of
// /proc/<pid>/status.
//
// A Groups line with no ids is a valid empty set. A missing line, or any field
// that is not a non-negative decimal id, is an error rather than a guess.
func ParseStatusGroups(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	// A process may carry up to NGROUPS_MAX (65536) groups, more than the default token size
	scanner.Buffer(make([]byte, 0, 4096), maxStatusLine)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, groupsPrefix) {
			continue
		}

		fields := strings.Fields(line[len(groupsPrefix):])
		groups := make([]int, 0, len(fields))
		for _, f := range fields {
			gid, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrGroupsMalformed, f)
			}
			groups = append(groups, int(gid))
		}
		return groups, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}
	return nil, ErrGroupsMissing
}
