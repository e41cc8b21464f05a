// File: internal/stack/graph.go
// Brief: Graph construction, validation, and deterministic ordering.

package stack

import (
	"fmt"
	"regexp"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
)

var stackNameRe = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// NewGraph validates the declared stacks and computes the deploy order.
// All validation failures surface as *backend.ConfigurationError except
// cycles, which surface as *CycleError.
func NewGraph(name string, specs []Spec) (*Graph, error) {
	g := &Graph{
		Name:   name,
		Specs:  append([]Spec(nil), specs...),
		byName: map[string]*Spec{},
	}
	if len(g.Specs) == 0 {
		return nil, &backend.ConfigurationError{Detail: "plan declares no stacks"}
	}
	for i := range g.Specs {
		s := &g.Specs[i]
		if !stackNameRe.MatchString(s.Name) {
			return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("stack name %q contains disallowed characters (want [a-zA-Z0-9-])", s.Name)}
		}
		if _, ok := g.byName[s.Name]; ok {
			return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("duplicate stack name %q", s.Name)}
		}
		g.byName[s.Name] = s
	}
	for i := range g.Specs {
		s := &g.Specs[i]
		for _, dep := range s.DependsOn {
			if _, ok := g.byName[dep]; !ok {
				return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("stack %q depends on undeclared stack %q", s.Name, dep)}
			}
		}
	}
	if cycle := findCycle(g.Specs); len(cycle) > 0 {
		return nil, &CycleError{Members: cycle}
	}
	g.order = computeOrder(g.Specs)
	if err := g.validateReferences(); err != nil {
		return nil, err
	}
	return g, nil
}

// computeOrder is a stable Kahn sort: the ready set is scanned in declaration
// order so equal-rank stacks always serialize the same way. Callers must have
// rejected cycles already.
func computeOrder(specs []Spec) []string {
	inDegree := map[string]int{}
	dependents := map[string][]string{}
	for _, s := range specs {
		inDegree[s.Name] = len(s.DependsOn)
		for _, dep := range s.DependsOn {
			dependents[dep] = append(dependents[dep], s.Name)
		}
	}
	order := make([]string, 0, len(specs))
	scheduled := map[string]bool{}
	for len(order) < len(specs) {
		progressed := false
		for _, s := range specs {
			if scheduled[s.Name] || inDegree[s.Name] > 0 {
				continue
			}
			scheduled[s.Name] = true
			order = append(order, s.Name)
			for _, dep := range dependents[s.Name] {
				inDegree[dep]--
			}
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return order
}

// DepsOf returns the transitive dependency closure of a stack, in no
// particular order.
func (g *Graph) DepsOf(name string) []string {
	var out []string
	seen := map[string]struct{}{}
	var walk func(string)
	walk = func(cur string) {
		spec := g.byName[cur]
		if spec == nil {
			return
		}
		for _, dep := range spec.DependsOn {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			out = append(out, dep)
			walk(dep)
		}
	}
	walk(name)
	return out
}

// validateReferences checks that every ${stack.key} parameter reference names
// either the stack itself or one of its transitive dependencies. Anything
// else would read an output the deploy order cannot guarantee to exist.
func (g *Graph) validateReferences() error {
	for i := range g.Specs {
		s := &g.Specs[i]
		allowed := map[string]struct{}{s.Name: {}}
		for _, dep := range g.DepsOf(s.Name) {
			allowed[dep] = struct{}{}
		}
		for param, value := range s.Parameters {
			for _, ref := range ParseRefs(value) {
				if _, ok := g.byName[ref.Stack]; !ok {
					return &backend.ConfigurationError{Detail: fmt.Sprintf("stack %q parameter %q references undeclared stack %q", s.Name, param, ref.Stack)}
				}
				if _, ok := allowed[ref.Stack]; !ok {
					return &backend.ConfigurationError{Detail: fmt.Sprintf("stack %q parameter %q references %q, which is not among its dependencies", s.Name, param, ref.Stack)}
				}
			}
		}
	}
	return nil
}
