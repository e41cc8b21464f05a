// File: internal/backend/backend.go
// Brief: Provisioning backend contract consumed by the orchestrators.

// Package backend defines the abstract provisioning backend the pendulum
// orchestrators drive: synchronous provision/deprovision of named stacks,
// best-effort output lookups, and a credential preflight.
package backend

import "context"

// ProvisionStatus is the terminal state of a provision call.
type ProvisionStatus string

const (
	ProvisionSucceeded ProvisionStatus = "SUCCEEDED"
	ProvisionFailed    ProvisionStatus = "FAILED"
)

// DeprovisionStatus classifies the outcome of a deprovision call.
// NotFound counts as success so repeated teardowns stay idempotent.
type DeprovisionStatus string

const (
	DeprovisionDestroyed DeprovisionStatus = "DESTROYED"
	DeprovisionNotFound  DeprovisionStatus = "NOT_FOUND"
	DeprovisionFailed    DeprovisionStatus = "FAILED"
)

// ProvisionResult is the backend's answer to a single provision call.
type ProvisionResult struct {
	Stack   string
	Status  ProvisionStatus
	Outputs map[string]string
	Detail  string
}

// Identity describes the credentials the backend resolved for this run.
type Identity struct {
	Account string
	Caller  string
}

// Backend is the provisioning system the CLI orchestrates. Every call is
// synchronous: it returns only once the backend has confirmed completion or
// failure. Implementations must be idempotent per stack name: re-provisioning
// an existing stack updates it in place, deprovisioning an absent stack
// reports NotFound rather than an error.
type Backend interface {
	// Identity performs a credential preflight. It is invoked once before any
	// mutating command so bad credentials fail fast with a remediation hint.
	Identity(ctx context.Context) (Identity, error)

	// Provision creates or updates the named stack with the given parameters.
	Provision(ctx context.Context, name string, params map[string]string) (ProvisionResult, error)

	// Deprovision destroys the named stack.
	Deprovision(ctx context.Context, name string) (DeprovisionStatus, string, error)

	// Describe returns a best-effort snapshot of the stack's current outputs.
	// The snapshot may lag immediately after a mutating call.
	Describe(ctx context.Context, name string) (map[string]string, error)

	// FindExport looks up a single named export. Absence is reported via the
	// boolean, not an error.
	FindExport(ctx context.Context, name string) (string, bool, error)
}
