package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sufield/credjar/internal/config"
	"github.com/sufield/credjar/internal/ports"
)

// Bootstrap wires application components:
//
//   - Creates the outbound adapters through the factory
//   - Builds the cookie jar with the configured retry budget
//   - Builds the reaper with the configured interval
//   - Returns the Application (background work is not started)
func Bootstrap(ctx context.Context, cfg config.FileConfig, factory ports.AdapterFactory, logger *slog.Logger) (*Application, error) {
	if factory == nil {
		return nil, fmt.Errorf("adapter factory is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	resolver, err := factory.CreateIdentityResolver()
	if err != nil {
		return nil, fmt.Errorf("create identity resolver: %w", err)
	}

	jar, err := NewCookieJar(factory.CreateTokenSource(), resolver,
		WithJarLogger(logger.With("component", "jar")),
		WithMaxAttempts(cfg.Jar.MaxAttempts))
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	monitor, err := factory.CreateProcessMonitor()
	if err != nil {
		return nil, fmt.Errorf("create process monitor: %w", err)
	}

	reaper, err := NewReaper(jar, monitor, cfg.ReaperInterval(),
		WithReaperLogger(logger.With("component", "reaper")))
	if err != nil {
		return nil, fmt.Errorf("create reaper: %w", err)
	}

	return New(cfg, jar, reaper)
}
