package config

// MAC lookup modes
const (
	MACModeAuto     = "auto"
	MACModeSmack    = "smack"
	MACModeDisabled = "disabled"
)

// Default values applied to unset fields
const (
	DefaultMaxAttempts    = 8
	DefaultProcRoot       = "/proc"
	DefaultSmackFS        = "/sys/fs/smackfs"
	DefaultSocketPath     = "/run/credjar/api.sock"
	DefaultSocketPerm     = "0770"
	DefaultReaperInterval = "5s"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Default returns a configuration with every field set to its default.
func Default() FileConfig {
	var cfg FileConfig
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *FileConfig) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Jar.MaxAttempts == 0 {
		cfg.Jar.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Resolver.ProcRoot == "" {
		cfg.Resolver.ProcRoot = DefaultProcRoot
	}
	if cfg.Resolver.MACMode == "" {
		cfg.Resolver.MACMode = MACModeAuto
	}
	if cfg.Resolver.SmackFS == "" {
		cfg.Resolver.SmackFS = DefaultSmackFS
	}
	if cfg.Server.SocketPath == "" {
		cfg.Server.SocketPath = DefaultSocketPath
	}
	if cfg.Server.SocketPerm == "" {
		cfg.Server.SocketPerm = DefaultSocketPerm
	}
	if cfg.Reaper.Interval == "" {
		cfg.Reaper.Interval = DefaultReaperInterval
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
