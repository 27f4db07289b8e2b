// Package liveness reports whether processes holding credentials are still running.
package liveness

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"slices"

	promfs "github.com/prometheus/procfs"
	"github.com/shirou/gopsutil/v4/common"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/sufield/credjar/internal/ports"
)

// Monitor implements ports.ProcessMonitor against a proc filesystem.
// It must read the same proc root as the identity resolver, or live
// credential holders look exited.
type Monitor struct {
	fs       promfs.FS
	procRoot string
}

// NewMonitor creates a liveness monitor reading the proc filesystem mounted
// at procRoot (the host's /proc when empty).
func NewMonitor(procRoot string) (*Monitor, error) {
	if procRoot == "" {
		procRoot = promfs.DefaultMountPoint
	}
	fsys, err := promfs.NewFS(procRoot)
	if err != nil {
		return nil, fmt.Errorf("open proc filesystem at %q: %w", procRoot, err)
	}
	return &Monitor{fs: fsys, procRoot: procRoot}, nil
}

// Alive reports whether pid refers to a running process. A zombie has exited
// and counts as gone.
func (m *Monitor) Alive(ctx context.Context, pid int) (bool, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return false, fmt.Errorf("invalid pid %d", pid)
	}

	if _, err := m.fs.Proc(pid); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check pid %d: %w", pid, err)
	}

	// gopsutil reads <procRoot>/<pid>/status through the env map in ctx
	ctx = context.WithValue(ctx, common.EnvKey, common.EnvMap{common.HostProcEnvKey: m.procRoot})
	p := &process.Process{Pid: int32(pid)}
	status, err := p.StatusWithContext(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// exited between the two reads
			return false, nil
		}
		return false, fmt.Errorf("status of pid %d: %w", pid, err)
	}
	return !slices.Contains(status, process.Zombie), nil
}

var _ ports.ProcessMonitor = (*Monitor)(nil)
