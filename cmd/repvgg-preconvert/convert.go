// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/repvgg-preconvert/internal/interpreter"
	"github.com/pdiddy/repvgg-preconvert/internal/preconvert"
	"github.com/pdiddy/repvgg-preconvert/pkg/types"
)

// runConvert resolves the interpreter and runs the converter once, or prints
// the plan when dry_run is set.
func (a *app) runConvert(cmd *cobra.Command, job types.Job) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	interp, err := interpreter.Detect(cfg.Python)
	if err != nil {
		return &preconvert.SpawnError{Err: err}
	}

	if cfg.DryRun {
		inv := preconvert.Plan(job)
		inv.Interpreter = interp.Path()
		return printPlan(cmd, inv)
	}

	// Ctrl-C reaches the child through the shared process group; the wrapper
	// only waits for it. Ignore would be inherited by the child across exec.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	return preconvert.Convert(cmd.Context(), interp, job, a.streams)
}

// dryRunPlan is the YAML document printed by --dry-run.
type dryRunPlan struct {
	types.Invocation `yaml:",inline"`
	Argv             []string `yaml:"argv"`
}

func printPlan(cmd *cobra.Command, inv types.Invocation) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(dryRunPlan{Invocation: inv, Argv: inv.Argv()}); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return enc.Close()
}
