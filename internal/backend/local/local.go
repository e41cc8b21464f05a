// File: internal/backend/local/local.go
// Brief: File-state backend powering the local development loop.

// Package local implements the provisioning backend against a JSON state
// file instead of a cloud API. `pendulum dev` uses it to exercise the full
// deploy/teardown orchestration offline: declared outputs are materialized
// deterministically, and state survives between invocations so teardown and
// idempotency behave like the real thing.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

type stackState struct {
	Parameters map[string]string `json:"parameters"`
	Outputs    map[string]string `json:"outputs"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type state struct {
	Stacks map[string]stackState `json:"stacks"`
}

// Backend is a file-backed provisioning backend. Not safe for concurrent
// use; the orchestrators are strictly sequential.
type Backend struct {
	path  string
	graph *stack.Graph
}

func New(path string, g *stack.Graph) *Backend {
	return &Backend{path: path, graph: g}
}

func (b *Backend) Identity(ctx context.Context) (backend.Identity, error) {
	return backend.Identity{Account: "local", Caller: "pendulum-dev"}, nil
}

// Provision records the stack in the state file and materializes its
// declared outputs. Re-provisioning an existing stack updates it in place.
func (b *Backend) Provision(ctx context.Context, name string, params map[string]string) (backend.ProvisionResult, error) {
	st, err := b.load()
	if err != nil {
		return backend.ProvisionResult{}, err
	}
	spec := b.graph.ByName(name)
	if spec == nil {
		return backend.ProvisionResult{
			Stack:  name,
			Status: backend.ProvisionFailed,
			Detail: fmt.Sprintf("stack %q not declared in plan", name),
		}, nil
	}
	outputs := map[string]string{}
	for _, key := range spec.Outputs {
		outputs[key] = localOutputValue(name, key)
	}
	st.Stacks[name] = stackState{
		Parameters: cloneMap(params),
		Outputs:    outputs,
		UpdatedAt:  time.Now(),
	}
	if err := b.save(st); err != nil {
		return backend.ProvisionResult{}, err
	}
	return backend.ProvisionResult{
		Stack:   name,
		Status:  backend.ProvisionSucceeded,
		Outputs: cloneMap(outputs),
	}, nil
}

func (b *Backend) Deprovision(ctx context.Context, name string) (backend.DeprovisionStatus, string, error) {
	st, err := b.load()
	if err != nil {
		return backend.DeprovisionFailed, "", err
	}
	if _, ok := st.Stacks[name]; !ok {
		return backend.DeprovisionNotFound, "", nil
	}
	delete(st.Stacks, name)
	if err := b.save(st); err != nil {
		return backend.DeprovisionFailed, "", err
	}
	return backend.DeprovisionDestroyed, "", nil
}

func (b *Backend) Describe(ctx context.Context, name string) (map[string]string, error) {
	st, err := b.load()
	if err != nil {
		return nil, err
	}
	s, ok := st.Stacks[name]
	if !ok {
		return nil, nil
	}
	return cloneMap(s.Outputs), nil
}

// FindExport resolves "<stack>.<key>" export names across all local stacks.
func (b *Backend) FindExport(ctx context.Context, name string) (string, bool, error) {
	st, err := b.load()
	if err != nil {
		return "", false, err
	}
	stackName, key, ok := strings.Cut(name, ".")
	if !ok {
		return "", false, nil
	}
	s, ok := st.Stacks[stackName]
	if !ok {
		return "", false, nil
	}
	v, ok := s.Outputs[key]
	return v, ok, nil
}

func localOutputValue(stackName, key string) string {
	return fmt.Sprintf("local://%s/%s", stackName, key)
}

func (b *Backend) load() (*state, error) {
	st := &state{Stacks: map[string]stackState{}}
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, fmt.Errorf("read local state: %w", err)
	}
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("parse local state %s: %w", b.path, err)
	}
	if st.Stacks == nil {
		st.Stacks = map[string]stackState{}
	}
	return st, nil
}

func (b *Backend) save(st *state) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create local state directory: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write local state: %w", err)
	}
	return os.Rename(tmp, b.path)
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
