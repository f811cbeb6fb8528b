// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the repvgg-preconvert CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/repvgg-preconvert/internal/interpreter"
	"github.com/pdiddy/repvgg-preconvert/internal/logging"
	"github.com/pdiddy/repvgg-preconvert/internal/preconvert"
	"github.com/pdiddy/repvgg-preconvert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	appName   = "repvgg-preconvert"
	envPrefix = "REPVGG_PRECONVERT"
)

// app carries per-invocation state shared by the root command's hooks.
type app struct {
	v       *viper.Viper
	streams interpreter.Streams
	closer  io.Closer
}

// newRootCmd builds the command tree. streams are handed to the converter
// and also receive the CLI's own output.
func newRootCmd(streams interpreter.Streams) *cobra.Command {
	a := &app{v: viper.New(), streams: streams}

	rootCmd := &cobra.Command{
		Use:   appName + " <input_dir> <output_dir>",
		Short: "Convert a RepVGG-B3 training checkpoint into its deploy form",
		Long: `repvgg-preconvert runs the convert.py script found in input_dir on the
RepVGG-B3-200epochs-train.pth checkpoint next to it, writing
RepVGG-B3-200epochs.pth to output_dir with architecture RepVGG-B3.

The converter runs under python3 (or python) from PATH unless --python names
another interpreter. Its exit status becomes the exit status of this command.`,
		Example: `  repvgg-preconvert ./downloads/repvgg-b3 ./models/repvgg-b3
  repvgg-preconvert --dry-run ./in ./out`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return &preconvert.UsageError{Err: err}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid from here on; later failures do not need usage text.
			cmd.SilenceUsage = true
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// PersistentPostRunE is skipped when RunE fails.
			defer a.close()
			return a.runConvert(cmd, types.Job{InputDir: args[0], OutputDir: args[1]})
		},
	}
	rootCmd.SetIn(streams.Stdin)
	rootCmd.SetOut(streams.Stdout)
	rootCmd.SetErr(streams.Stderr)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &preconvert.UsageError{Err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./"+appName+".yaml or ~/.config/"+appName+"/"+appName+".yaml)")
	pf.String("python", "", "interpreter used to run convert.py (default: python3, then python, from PATH)")
	pf.Bool("verbose", false, "log the planned invocation and converter status to stderr")
	pf.String("log-file", "", "write logs to a rotated file instead of stderr")
	rootCmd.Flags().Bool("dry-run", false, "print the planned invocation as YAML without running the converter")

	_ = a.v.BindPFlag("python", pf.Lookup("python"))
	_ = a.v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = a.v.BindPFlag("log_file", pf.Lookup("log-file"))
	_ = a.v.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))

	setVersion(rootCmd)
	return rootCmd
}

// setup reads configuration and installs the default logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName(appName)
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()

	readErr := a.v.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(readErr, &notFound) {
			return &preconvert.UsageError{Err: fmt.Errorf("reading config: %w", readErr)}
		}
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger, closer := logging.New(a.streams.Stderr, logging.WithLevel(level), logging.WithLogFile(cfg.LogFile))
	a.closer = closer
	slog.SetDefault(logger)

	if used := a.v.ConfigFileUsed(); readErr == nil && used != "" {
		slog.Debug("Using config file", "path", used)
	}
	return nil
}

// config decodes the layered settings: flag, then environment, then file.
func (a *app) config() (types.ConversionConfig, error) {
	var cfg types.ConversionConfig
	if err := a.v.Unmarshal(&cfg); err != nil {
		return cfg, &preconvert.UsageError{Err: fmt.Errorf("decoding config: %w", err)}
	}
	return cfg, nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func main() {
	rootCmd := newRootCmd(interpreter.StdStreams())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(preconvert.ExitCode(err))
	}
}
