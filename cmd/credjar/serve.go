package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sufield/credjar/internal/adapters/inbound/cookieapi"
	"github.com/sufield/credjar/internal/adapters/outbound/compose"
	"github.com/sufield/credjar/internal/app"
	"github.com/sufield/credjar/internal/config"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(cmd *Command, env *Env, args []string) error {
	fs := cmd.NewFlagSet(env)
	configPath := fs.StringP("config", "c", os.Getenv("CREDJAR_CONFIG"), "Path to credjar YAML config (defaults only if empty)")
	socket := fs.String("socket", "", "Override server.socket_path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath, func(cfg *config.FileConfig) {
		if *socket != "" {
			cfg.Server.SocketPath = *socket
		}
	})
	if err != nil {
		return err
	}
	perm, err := config.ParseSocketPerm(cfg.Server.SocketPerm)
	if err != nil {
		return err
	}

	logger := config.NewLogger(env.Stderr, cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Bootstrap(ctx, cfg, compose.NewHostAdapterFactory(cfg.Resolver), logger)
	if err != nil {
		return fmt.Errorf("failed to bootstrap: %w", err)
	}
	application.Start(ctx)
	defer application.Close()

	server := cookieapi.NewServer(application.Jar, cfg.Server.SocketPath,
		cookieapi.WithSocketPermissions(perm),
		cookieapi.WithLogger(logger.With("component", "cookieapi")))
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start cookie API: %w", err)
	}

	logger.Info("credjar running",
		"version", env.Version.Version,
		"socket", cfg.Server.SocketPath,
		"reaper_interval", cfg.ReaperInterval().String(),
		"mac_mode", cfg.Resolver.MACMode)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Stop(shutdownCtx)
}

// loadConfig loads path, applies flag overrides and validates again so a bad
// flag value is reported the same way as a bad file value
func loadConfig(path string, override func(*config.FileConfig)) (config.FileConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if override != nil {
		override(&cfg)
		if err := config.Validate(cfg); err != nil {
			return cfg, fmt.Errorf("invalid flags: %w", err)
		}
	}
	return cfg, nil
}
