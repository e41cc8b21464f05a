// File: internal/stack/graph_test.go
// Brief: Tests for graph construction, ordering, and cycle detection.

package stack

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
)

func linearChain() []Spec {
	return []Spec{
		{Name: "network"},
		{Name: "security", DependsOn: []string{"network"}},
		{Name: "database", DependsOn: []string{"security"}},
		{Name: "application", DependsOn: []string{"database"}},
	}
}

func TestOrderLinearChain(t *testing.T) {
	g, err := NewGraph("test", linearChain())
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	want := []string{"network", "security", "database", "application"}
	if got := g.Order(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReverseOrderIsExactReverse(t *testing.T) {
	g, err := NewGraph("test", linearChain())
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	order := g.Order()
	rev := g.ReverseOrder()
	if len(rev) != len(order) {
		t.Fatalf("reverse length = %d, want %d", len(rev), len(order))
	}
	for i := range order {
		if rev[len(order)-1-i] != order[i] {
			t.Fatalf("reverse = %v is not the exact reverse of %v", rev, order)
		}
	}
}

func TestOrderRespectsAllEdges(t *testing.T) {
	specs := []Spec{
		{Name: "frontend", DependsOn: []string{"application"}},
		{Name: "application", DependsOn: []string{"database", "security"}},
		{Name: "database", DependsOn: []string{"network"}},
		{Name: "security", DependsOn: []string{"network"}},
		{Name: "network"},
	}
	g, err := NewGraph("test", specs)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	order := g.Order()
	if len(order) != len(specs) {
		t.Fatalf("order has %d entries, want %d", len(order), len(specs))
	}
	pos := map[string]int{}
	for i, name := range order {
		if _, dup := pos[name]; dup {
			t.Fatalf("stack %q appears twice in %v", name, order)
		}
		pos[name] = i
	}
	for _, s := range specs {
		for _, dep := range s.DependsOn {
			if pos[dep] >= pos[s.Name] {
				t.Fatalf("order %v places %q before its dependency %q", order, s.Name, dep)
			}
		}
	}
}

func TestOrderTieBreakByDeclaration(t *testing.T) {
	// security and database both depend only on network; declaration order
	// must decide their relative position, making plans reproducible.
	specs := []Spec{
		{Name: "network"},
		{Name: "security", DependsOn: []string{"network"}},
		{Name: "database", DependsOn: []string{"network"}},
	}
	g, err := NewGraph("test", specs)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	want := []string{"network", "security", "database"}
	if got := g.Order(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	swapped := []Spec{specs[0], specs[2], specs[1]}
	g2, err := NewGraph("test", swapped)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	want = []string{"network", "database", "security"}
	if got := g2.Order(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestCycleRejected(t *testing.T) {
	specs := []Spec{
		{Name: "a", DependsOn: []string{"c"}},
		{Name: "b", DependsOn: []string{"a"}},
		{Name: "c", DependsOn: []string{"b"}},
	}
	_, err := NewGraph("test", specs)
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if len(cycleErr.Members) == 0 {
		t.Fatalf("cycle error names no members")
	}
	found := false
	for _, m := range cycleErr.Members {
		if m == "a" || m == "b" || m == "c" {
			found = true
		}
	}
	if !found {
		t.Fatalf("cycle members %v name no participant", cycleErr.Members)
	}
	if !strings.Contains(err.Error(), "->") {
		t.Fatalf("cycle error %q does not describe the path", err.Error())
	}
}

func TestSelfDependencyIsACycle(t *testing.T) {
	_, err := NewGraph("test", []Spec{{Name: "a", DependsOn: []string{"a"}}})
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError, got %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		specs []Spec
		want  string
	}{
		{
			name:  "duplicate name",
			specs: []Spec{{Name: "a"}, {Name: "a"}},
			want:  "duplicate",
		},
		{
			name:  "undeclared dependency",
			specs: []Spec{{Name: "a", DependsOn: []string{"ghost"}}},
			want:  "undeclared",
		},
		{
			name:  "disallowed characters",
			specs: []Spec{{Name: "bad name!"}},
			want:  "disallowed",
		},
		{
			name:  "empty plan",
			specs: nil,
			want:  "no stacks",
		},
		{
			name: "reference to undeclared stack",
			specs: []Spec{
				{Name: "a", Parameters: map[string]string{"x": "${ghost.id}"}},
			},
			want: "undeclared",
		},
		{
			name: "reference to non-dependency",
			specs: []Spec{
				{Name: "a"},
				{Name: "b", Parameters: map[string]string{"x": "${a.id}"}},
			},
			want: "not among its dependencies",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGraph("test", tc.specs)
			var cfgErr *backend.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestSelfReferenceIsAllowed(t *testing.T) {
	specs := []Spec{
		{Name: "application", Parameters: map[string]string{"publicUrl": "${application.url}"}},
	}
	if _, err := NewGraph("test", specs); err != nil {
		t.Fatalf("self-reference should validate, got %v", err)
	}
}

func TestTransitiveReferenceIsAllowed(t *testing.T) {
	specs := []Spec{
		{Name: "network"},
		{Name: "database", DependsOn: []string{"network"}},
		{Name: "application", DependsOn: []string{"database"}, Parameters: map[string]string{"vpc": "${network.vpcId}"}},
	}
	if _, err := NewGraph("test", specs); err != nil {
		t.Fatalf("transitive reference should validate, got %v", err)
	}
}
