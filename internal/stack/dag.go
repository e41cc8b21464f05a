// File: internal/stack/dag.go
// Brief: DFS cycle detection over declared dependencies.

package stack

import (
	"fmt"
	"strings"
)

// CycleError reports a dependency cycle. Members holds the cycle path in
// dependency direction, first member repeated implicitly.
type CycleError struct {
	Members []string
}

func (e *CycleError) Error() string {
	if len(e.Members) == 0 {
		return "dependency cycle detected"
	}
	loop := append(append([]string(nil), e.Members...), e.Members[0])
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(loop, " -> "))
}

// findCycle runs a depth-first search with an explicit recursion stack; any
// back-edge is a cycle. Returns the cycle members in path order, or nil.
func findCycle(specs []Spec) []string {
	deps := map[string][]string{}
	for _, s := range specs {
		deps[s.Name] = s.DependsOn
	}

	visited := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string
	var cycle []string

	var dfs func(string) bool
	dfs = func(name string) bool {
		visited[name] = true
		onStack[name] = true
		stack = append(stack, name)
		for _, dep := range deps[name] {
			if onStack[dep] {
				// Back-edge: slice the cycle out of the recursion stack.
				idx := 0
				for i := range stack {
					if stack[i] == dep {
						idx = i
						break
					}
				}
				cycle = append([]string(nil), stack[idx:]...)
				return true
			}
			if !visited[dep] && dfs(dep) {
				return true
			}
		}
		onStack[name] = false
		stack = stack[:len(stack)-1]
		return false
	}

	for _, s := range specs {
		if visited[s.Name] {
			continue
		}
		if dfs(s.Name) {
			return cycle
		}
	}
	return nil
}
