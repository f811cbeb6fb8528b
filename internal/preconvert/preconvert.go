// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preconvert plans and runs the RepVGG-B3 training-to-deploy
// checkpoint conversion. The weight transformation itself is done by the
// convert.py script shipped alongside the training checkpoint; this package
// only builds its command line and reports how it exited.
package preconvert

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pdiddy/repvgg-preconvert/internal/interpreter"
	"github.com/pdiddy/repvgg-preconvert/pkg/types"
)

const (
	// Architecture is the model variant passed to the converter.
	Architecture = "RepVGG-B3"

	// ScriptName is the converter script expected in the input directory.
	ScriptName = "convert.py"
	// TrainCheckpoint is the training-time checkpoint in the input directory.
	TrainCheckpoint = "RepVGG-B3-200epochs-train.pth"
	// DeployCheckpoint is the checkpoint the converter writes to the output directory.
	DeployCheckpoint = "RepVGG-B3-200epochs.pth"
)

// Runner executes the interpreter that hosts the converter script.
// interpreter.Interpreter satisfies it.
type Runner interface {
	Path() string
	Run(ctx context.Context, args []string, streams interpreter.Streams) error
}

// Plan builds the converter invocation for job. Paths are joined with
// filepath.Join, so trailing separators on either directory are dropped.
// Neither directory is checked for existence.
func Plan(job types.Job) types.Invocation {
	return types.Invocation{
		Script:       filepath.Join(job.InputDir, ScriptName),
		Checkpoint:   filepath.Join(job.InputDir, TrainCheckpoint),
		Output:       filepath.Join(job.OutputDir, DeployCheckpoint),
		Architecture: Architecture,
	}
}

// Convert runs the converter for job exactly once and waits for it to exit.
// It returns nil on success, *ConversionError when the converter exits
// non-zero, and *SpawnError when it cannot be started.
func Convert(ctx context.Context, r Runner, job types.Job, streams interpreter.Streams) error {
	inv := Plan(job)
	inv.Interpreter = r.Path()

	slog.Debug("Running converter",
		"interpreter", inv.Interpreter,
		"script", inv.Script,
		"checkpoint", inv.Checkpoint,
		"output", inv.Output,
		"architecture", inv.Architecture,
	)

	start := time.Now()
	err := classify(r.Run(ctx, inv.Argv(), streams))
	if err != nil {
		slog.Debug("Converter failed", "error", err, "exit_code", ExitCode(err), "elapsed", time.Since(start))
		return err
	}

	slog.Debug("Converter finished", "output", inv.Output, "elapsed", time.Since(start))
	return nil
}
