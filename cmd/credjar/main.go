package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	env := &Env{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Version: VersionInfo{Version: version, Commit: commit, Date: date},
	}

	registry := NewCommandRegistry(env)
	registerCommands(registry)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func registerCommands(r *CommandRegistry) {
	r.Register(&Command{
		Name:        "serve",
		Description: "Run the cookie broker on a Unix socket",
		Usage:       "credjar serve [--config file] [--socket path]",
		Examples: []string{
			"credjar serve --config /etc/credjar/credjar.yaml",
			"CREDJAR_LOG_LEVEL=debug credjar serve --socket /tmp/credjar/api.sock",
		},
		Run: serveCommand,
	})

	r.Register(&Command{
		Name:        "inspect",
		Description: "Print the identity snapshot the broker would bind to a pid",
		Usage:       "credjar inspect --pid N [--config file]",
		Examples: []string{
			"credjar inspect --pid 1",
			"credjar inspect --pid $$ --mac-mode disabled",
		},
		Run: inspectCommand,
	})

	r.Register(&Command{
		Name:        "version",
		Description: "Show version information",
		Usage:       "credjar version",
		Run:         versionCommand,
	})
}
