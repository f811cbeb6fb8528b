// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interpreter locates a Python interpreter and runs it with the
// caller's standard streams attached.
package interpreter

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	binPython3 = "python3"
	binPython  = "python"
)

// Streams are the standard streams handed to the child process.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdStreams returns the process's own stdin, stdout and stderr.
func StdStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Interpreter runs scripts through a resolved interpreter binary.
type Interpreter interface {
	// Name returns the name the interpreter was looked up by (e.g. "python3").
	Name() string

	// Path returns the resolved executable path.
	Path() string

	// Run executes the interpreter with args and waits for it to exit.
	// A non-zero exit is returned as an error wrapping *exec.ExitError.
	Run(ctx context.Context, args []string, streams Streams) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, streams Streams) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, streams Streams) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = streams.Stdin
	cmd.Stdout = streams.Stdout
	cmd.Stderr = streams.Stderr
	return cmd.Run()
}

type interpreter struct {
	name string
	path string
	exec executor
}

func (i *interpreter) Name() string { return i.name }

func (i *interpreter) Path() string { return i.path }

func (i *interpreter) Run(ctx context.Context, args []string, streams Streams) error {
	if err := i.exec.Run(ctx, i.path, args, streams); err != nil {
		return fmt.Errorf("running %s: %w", i.name, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// Detect resolves the interpreter to use. A non-empty preferred name or path
// is the only candidate; otherwise python3 is tried first, then python.
// Detection never spawns a process.
func Detect(preferred string) (Interpreter, error) {
	return detect(defaultExec, preferred)
}

func detect(exec executor, preferred string) (Interpreter, error) {
	if preferred != "" {
		path, err := exec.LookPath(preferred)
		if err != nil {
			return nil, fmt.Errorf("interpreter %s is not usable: %w", preferred, err)
		}
		return &interpreter{name: preferred, path: path, exec: exec}, nil
	}

	candidates := []string{binPython3, binPython}
	var lastErr error
	for _, name := range candidates {
		path, err := exec.LookPath(name)
		if err != nil {
			lastErr = err
			continue
		}
		return &interpreter{name: name, path: path, exec: exec}, nil
	}

	return nil, fmt.Errorf("no python interpreter available: tried %s: %w",
		strings.Join(candidates, ", "), lastErr)
}
