// File: cmd/pendulum/term_helpers.go
// Brief: CLI terminal detection shims.

package main

import (
	"io"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/ui"
)

func isTerminalReader(r io.Reader) bool {
	return ui.IsTerminalReader(r)
}

func isTerminalWriter(w io.Writer) bool {
	return ui.IsTerminalWriter(w)
}
