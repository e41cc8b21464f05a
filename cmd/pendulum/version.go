// File: cmd/pendulum/version.go
// Brief: CLI command wiring for 'pendulum version'.

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Overridden at release time via -ldflags "-X main.version=...".
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pendulum version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pendulum %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
