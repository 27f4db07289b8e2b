//go:build linux

package procfs_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/credjar/internal/adapters/outbound/procfs"
	"github.com/sufield/credjar/internal/domain"
)

// fakeProc builds <root>/<pid>/{exe,status,attr/current} entries
type fakeProc struct {
	t    *testing.T
	root string
}

func newFakeProc(t *testing.T) *fakeProc {
	t.Helper()
	return &fakeProc{t: t, root: t.TempDir()}
}

func (f *fakeProc) dir(pid int) string {
	return filepath.Join(f.root, strconv.Itoa(pid))
}

func (f *fakeProc) add(pid int, exe, status, label string) {
	f.t.Helper()
	dir := f.dir(pid)
	require.NoError(f.t, os.MkdirAll(filepath.Join(dir, "attr"), 0o755))
	if exe != "" {
		require.NoError(f.t, os.Symlink(exe, filepath.Join(dir, "exe")))
	}
	if status != "" {
		require.NoError(f.t, os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644))
	}
	if label != "" {
		require.NoError(f.t, os.WriteFile(filepath.Join(dir, "attr", "current"), []byte(label), 0o644))
	}
}

func TestResolver_ResolveSmack(t *testing.T) {
	t.Parallel()

	fp := newFakeProc(t)
	fp.add(100, "/bin/app", "Name:\tapp\nGroups:\t10 20\n", "app_t\x00")

	r, err := procfs.NewResolver(fp.root, procfs.WithMACMode(procfs.MACSmack))
	require.NoError(t, err)
	assert.True(t, r.SmackEnabled())

	id, err := r.Resolve(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "/bin/app", id.Path)
	assert.Equal(t, "app_t", id.Label)
	assert.Equal(t, []int{10, 20}, id.Groups)
}

func TestResolver_PrefersStackedSmackAttr(t *testing.T) {
	t.Parallel()

	fp := newFakeProc(t)
	fp.add(100, "/bin/app", "Groups:\t\n", "other_lsm_label")
	smackDir := filepath.Join(fp.dir(100), "attr", "smack")
	require.NoError(t, os.MkdirAll(smackDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(smackDir, "current"), []byte("System\n"), 0o644))

	r, err := procfs.NewResolver(fp.root, procfs.WithMACMode(procfs.MACSmack))
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "System", id.Label)
	assert.Empty(t, id.Groups)
}

func TestResolver_DisabledLabel(t *testing.T) {
	t.Parallel()

	fp := newFakeProc(t)
	fp.add(100, "/bin/app", "Groups:\t5\n", "")

	r, err := procfs.NewResolver(fp.root, procfs.WithMACMode(procfs.MACDisabled))
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelDisabled, id.Label)
}

func TestResolver_AutoWithoutSmackfs(t *testing.T) {
	t.Parallel()

	fp := newFakeProc(t)
	fp.add(100, "/bin/app", "Groups:\t5\n", "")

	// A plain temp dir is never smackfs
	r, err := procfs.NewResolver(fp.root, procfs.WithSmackFS(t.TempDir()))
	require.NoError(t, err)
	assert.False(t, r.SmackEnabled())

	id, err := r.Resolve(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelDisabled, id.Label)
}

func TestResolver_Failures(t *testing.T) {
	t.Parallel()

	fp := newFakeProc(t)
	fp.add(101, "", "Groups:\t1\n", "app_t")                   // exe link missing
	fp.add(102, "/bin/app (deleted)", "Groups:\t1\n", "app_t") // binary replaced
	fp.add(103, "/bin/app", "Name:\tapp\n", "app_t")           // no Groups line
	fp.add(104, "/bin/app", "Groups:\tx\n", "app_t")           // malformed groups
	fp.add(105, "/bin/app", "Groups:\t1\n", "")                // no label
	fp.add(106, "/bin/app", "Groups:\t1\n", "\x00")            // empty label
	fp.add(107, "/bin/app", "Groups:\t1\n", strings.Repeat("l", domain.MaxLabelLen+1))
	fp.add(108, "/bin/app", "", "app_t") // no status file

	r, err := procfs.NewResolver(fp.root, procfs.WithMACMode(procfs.MACSmack))
	require.NoError(t, err)

	for _, pid := range []int{-1, 0, 101, 102, 103, 104, 105, 106, 107, 108, 999} {
		t.Run(strconv.Itoa(pid), func(t *testing.T) {
			t.Parallel()

			id, err := r.Resolve(context.Background(), pid)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrResolutionFailed)
			assert.True(t, strings.HasPrefix(err.Error(), "["), "error carries a trace id: %v", err)
			assert.Empty(t, id.Path, "no partial identity on failure")
		})
	}
}

func TestResolver_CancelledContext(t *testing.T) {
	t.Parallel()

	fp := newFakeProc(t)
	fp.add(100, "/bin/app", "Groups:\t1\n", "app_t")

	r, err := procfs.NewResolver(fp.root, procfs.WithMACMode(procfs.MACSmack))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Resolve(ctx, 100)
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_GroupErrorsAreDistinguishable(t *testing.T) {
	t.Parallel()

	fp := newFakeProc(t)
	fp.add(103, "/bin/app", "Name:\tapp\n", "app_t")
	fp.add(104, "/bin/app", "Groups:\tx\n", "app_t")

	r, err := procfs.NewResolver(fp.root, procfs.WithMACMode(procfs.MACDisabled))
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), 103)
	assert.ErrorIs(t, err, procfs.ErrGroupsMissing)

	_, err = r.Resolve(context.Background(), 104)
	assert.ErrorIs(t, err, procfs.ErrGroupsMalformed)
}

func TestNewResolver_Errors(t *testing.T) {
	t.Parallel()

	_, err := procfs.NewResolver(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)

	_, err = procfs.NewResolver(t.TempDir(), procfs.WithMACMode("selinux"))
	assert.Error(t, err)
}

func TestResolver_Self(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat("/proc/self/status"); err != nil {
		t.Skip("no procfs available")
	}

	r, err := procfs.NewResolver("/proc", procfs.WithMACMode(procfs.MACDisabled))
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), os.Getpid())
	require.NoError(t, err)

	exe, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(exe), filepath.Base(id.Path))
	assert.NotNil(t, id.Groups)
}
