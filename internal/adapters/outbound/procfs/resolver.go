package procfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	promfs "github.com/prometheus/procfs"

	"github.com/sufield/credjar/internal/domain"
	"github.com/sufield/credjar/internal/ports"
)

// MACMode selects how the MAC label is obtained.
type MACMode string

const (
	// MACAuto reads the Smack label when smackfs is mounted and stores
	// domain.LabelDisabled otherwise.
	MACAuto MACMode = "auto"
	// MACSmack always reads the Smack label.
	MACSmack MACMode = "smack"
	// MACDisabled always stores domain.LabelDisabled.
	MACDisabled MACMode = "disabled"
)

// DefaultSmackFS is where smackfs is normally mounted.
const DefaultSmackFS = "/sys/fs/smackfs"

// Resolver implements ports.IdentityResolver on top of procfs.
type Resolver struct {
	fs       promfs.FS
	procRoot string
	mode     MACMode
	smackFS  string
	smack    bool // label lookup enabled, fixed at construction
}

// Option configures a Resolver
type Option func(*Resolver)

// WithMACMode sets the label lookup mode. Defaults to MACAuto.
func WithMACMode(mode MACMode) Option {
	return func(r *Resolver) {
		r.mode = mode
	}
}

// WithSmackFS sets the smackfs mount point used by MACAuto detection.
func WithSmackFS(path string) Option {
	return func(r *Resolver) {
		if path != "" {
			r.smackFS = path
		}
	}
}

// NewResolver creates a resolver reading from the proc filesystem mounted at procRoot.
func NewResolver(procRoot string, opts ...Option) (*Resolver, error) {
	if procRoot == "" {
		procRoot = promfs.DefaultMountPoint
	}
	fs, err := promfs.NewFS(procRoot)
	if err != nil {
		return nil, fmt.Errorf("open proc filesystem at %q: %w", procRoot, err)
	}

	r := &Resolver{
		fs:       fs,
		procRoot: procRoot,
		mode:     MACAuto,
		smackFS:  DefaultSmackFS,
	}
	for _, opt := range opts {
		opt(r)
	}

	switch r.mode {
	case MACSmack:
		r.smack = true
	case MACDisabled:
		r.smack = false
	case MACAuto:
		r.smack = smackEnabled(r.smackFS)
	default:
		return nil, fmt.Errorf("unknown MAC mode %q", r.mode)
	}
	return r, nil
}

// SmackEnabled reports whether labels are read from the process (true) or
// replaced by domain.LabelDisabled (false).
func (r *Resolver) SmackEnabled() bool {
	return r.smack
}

// Resolve captures the executable path, MAC label and groups of pid.
//
// Any failing sub-lookup fails the whole resolution; errors wrap
// domain.ErrResolutionFailed and carry a [trace-id] prefix for log correlation.
func (r *Resolver) Resolve(ctx context.Context, pid int) (ports.ProcessIdentity, error) {
	traceID := uuid.NewString()

	fail := func(step string, err error) (ports.ProcessIdentity, error) {
		return ports.ProcessIdentity{}, fmt.Errorf("[%s] %w: pid %d: %s: %w",
			traceID, domain.ErrResolutionFailed, pid, step, err)
	}

	// Check for context cancellation before touching the filesystem
	if err := ctx.Err(); err != nil {
		return fail("cancelled", err)
	}
	if pid <= 0 {
		return fail("validate", fmt.Errorf("invalid pid %d", pid))
	}

	proc, err := r.fs.Proc(pid)
	if err != nil {
		return fail("process", err)
	}

	path, err := executable(proc)
	if err != nil {
		return fail("executable", err)
	}

	label := domain.LabelDisabled
	if r.smack {
		if label, err = r.readLabel(pid); err != nil {
			return fail("label", err)
		}
	}

	groups, err := r.readGroups(pid)
	if err != nil {
		return fail("groups", err)
	}

	return ports.ProcessIdentity{
		Path:   path,
		Label:  label,
		Groups: groups,
	}, nil
}

func executable(proc promfs.Proc) (string, error) {
	exe, err := proc.Executable()
	if err != nil {
		return "", err
	}
	// procfs reports a vanished exe link as an empty path
	if exe == "" {
		return "", errors.New("executable link is missing")
	}
	// Binary replaced or removed since exec
	if strings.HasSuffix(exe, " (deleted)") {
		return "", fmt.Errorf("executable deleted: %s", exe)
	}
	return exe, nil
}

func (r *Resolver) pidDir(pid int) string {
	return filepath.Join(r.procRoot, strconv.Itoa(pid))
}

// readLabel reads the Smack label of pid. Kernels with LSM stacking expose it
// under attr/smack/current; older kernels only under attr/current.
func (r *Resolver) readLabel(pid int) (string, error) {
	dir := r.pidDir(pid)
	data, err := os.ReadFile(filepath.Join(dir, "attr", "smack", "current"))
	if errors.Is(err, os.ErrNotExist) {
		data, err = os.ReadFile(filepath.Join(dir, "attr", "current"))
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimRight(string(data), "\x00\n")
	if label == "" {
		return "", errors.New("empty label")
	}
	if len(label) > domain.MaxLabelLen {
		return "", fmt.Errorf("label longer than %d bytes", domain.MaxLabelLen)
	}
	return label, nil
}

func (r *Resolver) readGroups(pid int) ([]int, error) {
	f, err := os.Open(filepath.Join(r.pidDir(pid), "status"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseStatusGroups(f)
}

var _ ports.IdentityResolver = (*Resolver)(nil)
