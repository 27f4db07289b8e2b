package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Validate checks a configuration after defaults were applied.
//
// Ensures:
//
//   - jar.max_attempts is >= 1
//   - resolver.proc_root is set and resolver.mac_mode is auto, smack or disabled
//   - server.socket_path is absolute and server.socket_perm is an octal mode
//   - reaper.interval parses as a non-negative duration
//   - log.level and log.format are known values
func Validate(cfg FileConfig) error {
	var errs []error

	if cfg.Jar.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("jar.max_attempts must be >= 1 (got %d)", cfg.Jar.MaxAttempts))
	}

	if cfg.Resolver.ProcRoot == "" {
		errs = append(errs, errors.New("resolver.proc_root must be set"))
	}
	switch cfg.Resolver.MACMode {
	case MACModeAuto, MACModeSmack, MACModeDisabled:
	default:
		errs = append(errs, fmt.Errorf("resolver.mac_mode must be one of auto, smack, disabled (got %q)", cfg.Resolver.MACMode))
	}

	if !strings.HasPrefix(cfg.Server.SocketPath, "/") {
		errs = append(errs, fmt.Errorf("server.socket_path must be absolute (got %q)", cfg.Server.SocketPath))
	}
	if _, err := ParseSocketPerm(cfg.Server.SocketPerm); err != nil {
		errs = append(errs, err)
	}

	if d, err := time.ParseDuration(cfg.Reaper.Interval); err != nil {
		errs = append(errs, fmt.Errorf("invalid reaper.interval %q: %w", cfg.Reaper.Interval, err))
	} else if d < 0 {
		errs = append(errs, fmt.Errorf("reaper.interval must be >= 0 (got %s)", d))
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json (got %q)", cfg.Log.Format))
	}

	return errors.Join(errs...)
}

// ParseSocketPerm parses an octal permission string such as "0770".
func ParseSocketPerm(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid server.socket_perm %q: %w", s, err)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("server.socket_perm %q out of range", s)
	}
	return os.FileMode(v), nil
}
