package wine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
)

// EnvVar is one entry of an environment overlay.
type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Launch describes a command ready to be spawned: the executable, its working
// directory, its arguments (without argv[0]) and the variables to set on top
// of the host environment. Assembling a Launch never starts a process.
type Launch struct {
	Path string   `yaml:"path"`
	Dir  string   `yaml:"dir"`
	Args []string `yaml:"args"`
	Env  []EnvVar `yaml:"env"`
}

// Lookup returns the overlay value for name.
func (l *Launch) Lookup(name string) (string, bool) {
	for _, v := range l.Env {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Environ applies the overlay to base, a list of KEY=VALUE entries. Entries of
// base whose key is set by the overlay are dropped; the overlay follows the
// remaining entries in order.
func (l *Launch) Environ(base []string) []string {
	overridden := make(map[string]bool, len(l.Env))
	for _, v := range l.Env {
		overridden[v.Name] = true
	}

	out := make([]string, 0, len(base)+len(l.Env))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if overridden[key] {
			continue
		}
		out = append(out, kv)
	}
	for _, v := range l.Env {
		out = append(out, v.Name+"="+v.Value)
	}
	return out
}

// Cmd returns an exec.Cmd for the launch, inheriting the host environment
// with the overlay applied.
func (l *Launch) Cmd(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, l.Path, l.Args...)
	cmd.Dir = l.Dir
	cmd.Env = l.Environ(os.Environ())
	return cmd
}

// Output is the captured result of a command run to completion.
type Output struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the command exited with status 0.
func (o *Output) Success() bool {
	return o.ExitCode == 0
}

// Output runs the launch, waits for it and captures its output. An exit
// status other than zero is returned in Output; only a failure to start the
// executable is an error.
func (l *Launch) Output(ctx context.Context) (*Output, error) {
	cmd := l.Cmd(ctx)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, core.ErrSpawn(l.Path, err)
		}
	}

	return &Output{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
