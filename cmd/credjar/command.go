package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Command is a single credjar subcommand
type Command struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Run         func(cmd *Command, env *Env, args []string) error
}

// Env carries the streams and build info commands write to
type Env struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Version VersionInfo
}

// VersionInfo holds build-time version information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewFlagSet creates a flag set whose usage output matches the other commands.
// Parse returns pflag.ErrHelp for --help instead of exiting.
func (c *Command) NewFlagSet(env *Env) *pflag.FlagSet {
	fs := pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() {
		c.PrintUsage(env.Stderr)
		fmt.Fprintln(env.Stderr, "FLAGS:")
		fs.PrintDefaults()
	}
	return fs
}

// PrintUsage prints the command's description, usage line and examples
func (c *Command) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "%s\n\n", c.Description)
	fmt.Fprintf(w, "USAGE:\n    %s\n\n", c.Usage)
	if len(c.Examples) > 0 {
		fmt.Fprintln(w, "EXAMPLES:")
		for _, example := range c.Examples {
			fmt.Fprintf(w, "    %s\n", example)
		}
		fmt.Fprintln(w)
	}
}

// CommandRegistry dispatches to registered commands by name
type CommandRegistry struct {
	commands map[string]*Command
	order    []string
	env      *Env
}

// NewCommandRegistry creates an empty registry
func NewCommandRegistry(env *Env) *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]*Command),
		env:      env,
	}
}

// Register adds a command. Help lists commands in registration order.
func (r *CommandRegistry) Register(cmd *Command) {
	if _, ok := r.commands[cmd.Name]; !ok {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
}

// Execute runs the command named by args[0]
func (r *CommandRegistry) Execute(args []string) error {
	if len(args) < 1 {
		r.PrintHelp(r.env.Stderr)
		return fmt.Errorf("no command specified")
	}

	switch args[0] {
	case "help", "-h", "--help":
		r.PrintHelp(r.env.Stdout)
		return nil
	}

	cmd, ok := r.commands[args[0]]
	if !ok {
		r.PrintHelp(r.env.Stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}

	err := cmd.Run(cmd, r.env, args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

// PrintHelp prints the command list
func (r *CommandRegistry) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "credjar - process-bound cookie broker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    credjar <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMMANDS:")
	for _, name := range r.order {
		fmt.Fprintf(w, "    %-10s %s\n", name, r.commands[name].Description)
	}
	fmt.Fprintf(w, "    %-10s %s\n", "help", "Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'credjar <command> --help' for more information on a command.")
}
