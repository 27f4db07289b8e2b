package app

import (
	"context"
	"fmt"

	"github.com/sufield/credjar/internal/config"
)

// Application holds the bootstrapped components used by inbound adapters
type Application struct {
	Config config.FileConfig
	Jar    *CookieJar
	Reaper *Reaper
}

// New wires an Application from already constructed components
func New(cfg config.FileConfig, jar *CookieJar, reaper *Reaper) (*Application, error) {
	if jar == nil {
		return nil, fmt.Errorf("cookie jar cannot be nil")
	}
	if reaper == nil {
		return nil, fmt.Errorf("reaper cannot be nil")
	}
	return &Application{Config: cfg, Jar: jar, Reaper: reaper}, nil
}

// Start launches background work (the reaper loop)
func (a *Application) Start(ctx context.Context) {
	a.Reaper.Start(ctx)
}

// Close stops background work and waits for it to finish
func (a *Application) Close() {
	a.Reaper.Stop()
}
