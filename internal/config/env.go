package config

import (
	"fmt"
	"os"
	"strconv"
)

// applyEnvOverrides overrides config values with environment variables if set
// Returns error for invalid environment variable values to fail fast
func applyEnvOverrides(cfg *FileConfig) error {
	if socketPath := os.Getenv("CREDJAR_SOCKET"); socketPath != "" {
		cfg.Server.SocketPath = socketPath
	}
	if procRoot := os.Getenv("CREDJAR_PROC_ROOT"); procRoot != "" {
		cfg.Resolver.ProcRoot = procRoot
	}
	if mode := os.Getenv("CREDJAR_MAC_MODE"); mode != "" {
		cfg.Resolver.MACMode = mode
	}
	if interval := os.Getenv("CREDJAR_REAPER_INTERVAL"); interval != "" {
		cfg.Reaper.Interval = interval
	}
	if level := os.Getenv("CREDJAR_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if attempts := os.Getenv("CREDJAR_MAX_ATTEMPTS"); attempts != "" {
		n, err := strconv.Atoi(attempts)
		if err != nil {
			return fmt.Errorf("invalid CREDJAR_MAX_ATTEMPTS %q: %w", attempts, err)
		}
		cfg.Jar.MaxAttempts = n
	}
	return nil
}
