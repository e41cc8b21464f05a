// File: internal/backend/backendtest/fake.go
// Brief: Scriptable in-memory backend for orchestrator tests.

// Package backendtest provides a fake provisioning backend whose per-stack
// behavior tests script up front. It records every call in order.
package backendtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
)

// Fake implements backend.Backend with scripted responses.
type Fake struct {
	mu sync.Mutex

	// Outputs returned when the named stack provisions successfully.
	Outputs map[string]map[string]string
	// FailProvision marks stacks whose provision call reports Failed.
	FailProvision map[string]string
	// FailDeprovision marks stacks whose deprovision call reports Failed.
	FailDeprovision map[string]string
	// Absent marks stacks whose deprovision call reports NotFound.
	Absent map[string]bool
	// IdentityErr, when set, fails the credential preflight.
	IdentityErr error
	// Exports served by FindExport.
	Exports map[string]string

	ProvisionCalls   []ProvisionCall
	DeprovisionCalls []string
}

type ProvisionCall struct {
	Stack  string
	Params map[string]string
}

func New() *Fake {
	return &Fake{
		Outputs:         map[string]map[string]string{},
		FailProvision:   map[string]string{},
		FailDeprovision: map[string]string{},
		Absent:          map[string]bool{},
		Exports:         map[string]string{},
	}
}

func (f *Fake) Identity(ctx context.Context) (backend.Identity, error) {
	if f.IdentityErr != nil {
		return backend.Identity{}, f.IdentityErr
	}
	return backend.Identity{Account: "000000000000", Caller: "fake"}, nil
}

func (f *Fake) Provision(ctx context.Context, name string, params map[string]string) (backend.ProvisionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	f.ProvisionCalls = append(f.ProvisionCalls, ProvisionCall{Stack: name, Params: copied})
	if detail, ok := f.FailProvision[name]; ok {
		return backend.ProvisionResult{Stack: name, Status: backend.ProvisionFailed, Detail: detail}, nil
	}
	return backend.ProvisionResult{
		Stack:   name,
		Status:  backend.ProvisionSucceeded,
		Outputs: f.Outputs[name],
	}, nil
}

func (f *Fake) Deprovision(ctx context.Context, name string) (backend.DeprovisionStatus, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeprovisionCalls = append(f.DeprovisionCalls, name)
	if detail, ok := f.FailDeprovision[name]; ok {
		return backend.DeprovisionFailed, detail, nil
	}
	if f.Absent[name] {
		return backend.DeprovisionNotFound, "", nil
	}
	return backend.DeprovisionDestroyed, "", nil
}

func (f *Fake) Describe(ctx context.Context, name string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	outputs, ok := f.Outputs[name]
	if !ok {
		return nil, fmt.Errorf("stack %q does not exist", name)
	}
	return outputs, nil
}

func (f *Fake) FindExport(ctx context.Context, name string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.Exports[name]
	return v, ok, nil
}

// ProvisionedStacks returns the stacks provisioned so far, in call order.
func (f *Fake) ProvisionedStacks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.ProvisionCalls))
	for _, c := range f.ProvisionCalls {
		out = append(out, c.Stack)
	}
	return out
}
