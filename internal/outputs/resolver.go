// File: internal/outputs/resolver.go
// Brief: Post-provisioning output and export lookups.

// Package outputs answers "what did this stack publish" questions after a
// provisioning phase, distinguishing lookups that may legitimately be absent
// from ones a downstream parameter depends on.
package outputs

import (
	"context"

	"go.uber.org/zap"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
)

type Resolver struct {
	Backend backend.Backend
	Logger  *zap.Logger
}

// Snapshot returns the stack's current outputs via describe. The snapshot is
// best-effort and may lag immediately after a mutating call.
func (r *Resolver) Snapshot(ctx context.Context, name string) (map[string]string, error) {
	return r.Backend.Describe(ctx, name)
}

// Export looks up a single named export. When required, absence is a fatal
// OutputNotFoundError; otherwise it is logged at debug and reported as a
// plain miss so informational lookups never fail a deployment.
func (r *Resolver) Export(ctx context.Context, name string, required bool) (string, bool, error) {
	value, found, err := r.Backend.FindExport(ctx, name)
	if err != nil {
		if required {
			return "", false, err
		}
		r.logger().Debug("export lookup failed, treating as absent", zap.String("export", name), zap.Error(err))
		return "", false, nil
	}
	if !found {
		if required {
			return "", false, &backend.OutputNotFoundError{Key: name, Required: true}
		}
		r.logger().Debug("export not found, treating as absent", zap.String("export", name))
		return "", false, nil
	}
	return value, true, nil
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
