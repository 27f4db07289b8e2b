package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sufield/credjar/internal/adapters/outbound/compose"
	"github.com/sufield/credjar/internal/config"
)

// inspectReport is what inspect prints
type inspectReport struct {
	PID    int    `yaml:"pid"`
	Path   string `yaml:"path"`
	Label  string `yaml:"label"`
	Groups []int  `yaml:"groups"`
}

func inspectCommand(cmd *Command, env *Env, args []string) error {
	fs := cmd.NewFlagSet(env)
	pid := fs.IntP("pid", "p", 0, "Process id to resolve (required)")
	configPath := fs.StringP("config", "c", os.Getenv("CREDJAR_CONFIG"), "Path to credjar YAML config")
	macMode := fs.String("mac-mode", "", "Override resolver.mac_mode (auto, smack, disabled)")
	procRoot := fs.String("proc-root", "", "Override resolver.proc_root")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pid <= 0 {
		fs.Usage()
		return fmt.Errorf("--pid is required and must be positive")
	}

	cfg, err := loadConfig(*configPath, func(cfg *config.FileConfig) {
		if *macMode != "" {
			cfg.Resolver.MACMode = *macMode
		}
		if *procRoot != "" {
			cfg.Resolver.ProcRoot = *procRoot
		}
	})
	if err != nil {
		return err
	}

	resolver, err := compose.NewHostAdapterFactory(cfg.Resolver).CreateIdentityResolver()
	if err != nil {
		return err
	}
	identity, err := resolver.Resolve(context.Background(), *pid)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(env.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(inspectReport{
		PID:    *pid,
		Path:   identity.Path,
		Label:  identity.Label,
		Groups: identity.Groups,
	}); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
