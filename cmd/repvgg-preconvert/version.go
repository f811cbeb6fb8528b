package main

import (
	"github.com/spf13/cobra"
)

// setVersion enables --version on cmd. A flag is used instead of a
// subcommand so every positional argument stays available as a directory.
func setVersion(cmd *cobra.Command) {
	cmd.Version = version
	cmd.SetVersionTemplate(appName + " {{.Version}}\n")
}
