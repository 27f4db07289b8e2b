package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sufield/credjar/internal/bg"
	"github.com/sufield/credjar/internal/domain"
	"github.com/sufield/credjar/internal/ports"
)

// Reaper removes credentials whose owning process has exited.
type Reaper struct {
	jar      *CookieJar
	monitor  ports.ProcessMonitor
	interval time.Duration
	runner   bg.Runner
	logger   *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// ReaperOption configures a Reaper
type ReaperOption func(*Reaper)

// WithReaperLogger sets a structured logger for the reaper
func WithReaperLogger(logger *slog.Logger) ReaperOption {
	return func(r *Reaper) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRunner sets how the sweep loop is run. Defaults to bg.Async.
func WithRunner(runner bg.Runner) ReaperOption {
	return func(r *Reaper) {
		if runner != nil {
			r.runner = runner
		}
	}
}

// NewReaper creates a reaper sweeping jar every interval. An interval of zero
// disables the periodic loop; Sweep can still be called directly.
func NewReaper(jar *CookieJar, monitor ports.ProcessMonitor, interval time.Duration, opts ...ReaperOption) (*Reaper, error) {
	if jar == nil {
		return nil, fmt.Errorf("cookie jar cannot be nil")
	}
	if monitor == nil {
		return nil, fmt.Errorf("process monitor cannot be nil")
	}
	if interval < 0 {
		return nil, fmt.Errorf("reaper interval must be >= 0 (got %s)", interval)
	}

	r := &Reaper{
		jar:      jar,
		monitor:  monitor,
		interval: interval,
		runner:   bg.Async{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Sweep checks every pid in the jar once and removes the credentials of
// processes that are gone. Returns the number of credentials removed.
// A liveness error for one pid is collected and the sweep continues.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	var (
		removed int
		errs    []error
	)
	for _, pid := range r.jar.PIDs() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		alive, err := r.monitor.Alive(ctx, pid)
		if err != nil {
			errs = append(errs, fmt.Errorf("check pid %d: %w", pid, err))
			continue
		}
		if alive {
			continue
		}
		n, err := r.jar.RemoveAll(domain.ByPID, domain.Pattern{PID: pid})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if n > 0 {
			r.logger.Info("removed credentials of exited process", "pid", pid, "count", n)
		}
		removed += n
	}
	return removed, errors.Join(errs...)
}

// Start launches the periodic sweep. It returns immediately with bg.Async.
// With bg.Sync it blocks until ctx is cancelled or Stop is called.
func (r *Reaper) Start(ctx context.Context) {
	if r.interval == 0 {
		r.logger.Info("reaper disabled")
		close(r.done)
		return
	}

	r.runner.Do(func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.logger.Info("reaper started", "interval", r.interval.String())
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			case <-ticker.C:
				if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
					r.logger.Warn("reaper sweep incomplete", "error", err)
				}
			}
		}
	})
}

// Stop ends the sweep loop and waits for it to exit. Safe to call more than once.
// Must only be called after Start.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}
