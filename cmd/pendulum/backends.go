// File: cmd/pendulum/backends.go
// Brief: Backend selection and credential preflight.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend/local"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

// newBackendFor resolves the --backend flag. Cloud backends plug in through
// the backend.Backend interface; this build ships the file-state local
// backend used by the development loop and tests.
func newBackendFor(opts *config.Options, kind string, g *stack.Graph) (backend.Backend, error) {
	switch kind {
	case "local", "":
		return local.New(opts.LocalState, g), nil
	default:
		return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("unknown backend %q (available: local)", kind)}
	}
}

// checkIdentity runs the credential preflight before any mutating command so
// bad credentials fail fast instead of mid-deploy.
func checkIdentity(ctx context.Context, b backend.Backend) error {
	if _, err := b.Identity(ctx); err != nil {
		var credErr *backend.CredentialError
		if errors.As(err, &credErr) {
			return err
		}
		return &backend.CredentialError{
			Hint: "verify your provisioning backend credentials and region configuration, then retry.",
			Err:  err,
		}
	}
	return nil
}
