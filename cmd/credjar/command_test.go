package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() (*CommandRegistry, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Env{
		Stdout:  &stdout,
		Stderr:  &stderr,
		Version: VersionInfo{Version: "1.2.3", Commit: "abc", Date: "today"},
	}
	r := NewCommandRegistry(env)
	registerCommands(r)
	return r, &stdout, &stderr
}

func TestRegistry_Help(t *testing.T) {
	t.Parallel()

	r, stdout, _ := newTestRegistry()
	require.NoError(t, r.Execute([]string{"help"}))

	out := stdout.String()
	for _, name := range []string{"serve", "inspect", "version"} {
		assert.Contains(t, out, name)
	}
	assert.Less(t, bytes.Index(stdout.Bytes(), []byte("serve")), bytes.Index(stdout.Bytes(), []byte("inspect")),
		"commands listed in registration order")
}

func TestRegistry_Errors(t *testing.T) {
	t.Parallel()

	r, _, stderr := newTestRegistry()
	assert.EqualError(t, r.Execute(nil), "no command specified")
	assert.EqualError(t, r.Execute([]string{"frobnicate"}), "unknown command: frobnicate")
	assert.Contains(t, stderr.String(), "COMMANDS:")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	r, stdout, _ := newTestRegistry()
	require.NoError(t, r.Execute([]string{"version"}))
	assert.Contains(t, stdout.String(), "credjar 1.2.3 (commit: abc, built: today")

	assert.Error(t, r.Execute([]string{"version", "extra"}))
}

func TestCommandHelpFlag(t *testing.T) {
	t.Parallel()

	r, _, stderr := newTestRegistry()
	require.NoError(t, r.Execute([]string{"inspect", "--help"}))
	assert.Contains(t, stderr.String(), "USAGE:")
	assert.Contains(t, stderr.String(), "--pid")
}

func TestInspectCommand_RequiresPID(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRegistry()
	assert.ErrorContains(t, r.Execute([]string{"inspect"}), "--pid")
	assert.ErrorContains(t, r.Execute([]string{"inspect", "--pid", "-4"}), "--pid")
}

func TestServeCommand_BadConfig(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRegistry()
	err := r.Execute([]string{"serve", "--config", "/nonexistent/credjar.yaml"})
	assert.ErrorContains(t, err, "failed to load config")

	err = r.Execute([]string{"serve", "--unknown-flag"})
	assert.Error(t, err)
}
