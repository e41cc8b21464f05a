// File: internal/stack/types.go
// Brief: Stack plan configuration types.

// Package stack models the declarative deployment plan: named stacks with
// dependency edges, parameters, and declared outputs, plus the deterministic
// ordering the orchestrators execute.
package stack

type APIVersionKind struct {
	APIVersion string `yaml:"apiVersion,omitempty"`
	Kind       string `yaml:"kind,omitempty"`
}

// Spec is one provisionable stack as declared in the plan file.
type Spec struct {
	Name       string            `yaml:"name"`
	DependsOn  []string          `yaml:"dependsOn,omitempty"`
	Parameters map[string]string `yaml:"parameters,omitempty"`
	Outputs    []string          `yaml:"outputs,omitempty"`
}

// PlanFile is the on-disk shape of a deployment plan.
type PlanFile struct {
	APIVersionKind `yaml:",inline"`

	Name   string `yaml:"name,omitempty"`
	Stacks []Spec `yaml:"stacks"`
}

// Graph is a validated stack dependency graph. Construction rejects duplicate
// names, unknown dependencies, disallowed name characters, and cycles, so any
// Graph value in hand is safe to order and execute.
type Graph struct {
	Name  string
	Specs []Spec

	byName map[string]*Spec
	order  []string
}

// ByName returns the spec for a stack, or nil when unknown.
func (g *Graph) ByName(name string) *Spec {
	if g == nil {
		return nil
	}
	return g.byName[name]
}

// Order returns the deploy order: every stack appears after everything it
// depends on, ties broken by declaration order.
func (g *Graph) Order() []string {
	return append([]string(nil), g.order...)
}

// ReverseOrder returns the teardown order, the exact reverse of Order.
func (g *Graph) ReverseOrder() []string {
	out := make([]string, len(g.order))
	for i, name := range g.order {
		out[len(g.order)-1-i] = name
	}
	return out
}
