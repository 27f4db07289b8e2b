package config

import "time"

// JarSection configures the credential jar.
type JarSection struct {
	// MaxAttempts bounds how many token candidates an issuance draws before
	// failing with a generation-exhausted error.
	MaxAttempts int `yaml:"max_attempts"`
}

// ResolverSection configures how process identity is read from the host.
type ResolverSection struct {
	// ProcRoot is the procfs mount point. Defaults to /proc.
	ProcRoot string `yaml:"proc_root"`

	// MACMode selects MAC label lookup: "auto" detects Smack, "smack" always
	// reads the label, "disabled" stores the disabled sentinel.
	MACMode string `yaml:"mac_mode"`

	// SmackFS is the smackfs mount point used by "auto" detection.
	SmackFS string `yaml:"smackfs"`
}

// ServerSection configures the cookie API socket.
type ServerSection struct {
	SocketPath string `yaml:"socket_path"`

	// SocketPerm is the octal permission string applied to the socket file, e.g. "0770".
	SocketPerm string `yaml:"socket_perm"`
}

// ReaperSection configures removal of credentials for exited processes.
type ReaperSection struct {
	// Interval between sweeps in Go duration format. "0s" disables the reaper.
	Interval string `yaml:"interval"`
}

// LogSection configures structured logging.
type LogSection struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// FileConfig represents a credjar configuration file.
//
// The config format is versioned to support future evolution without breaking changes.
type FileConfig struct {
	Version  int             `yaml:"version,omitempty"`
	Jar      JarSection      `yaml:"jar"`
	Resolver ResolverSection `yaml:"resolver"`
	Server   ServerSection   `yaml:"server"`
	Reaper   ReaperSection   `yaml:"reaper"`
	Log      LogSection      `yaml:"log"`
}

// ReaperInterval returns the parsed reaper interval.
// Call Validate first; an unparsable value yields zero.
func (c FileConfig) ReaperInterval() time.Duration {
	d, err := time.ParseDuration(c.Reaper.Interval)
	if err != nil {
		return 0
	}
	return d
}
