// File: internal/teardown/teardown_test.go
// Brief: Tests for best-effort teardown and the outcome report.

package teardown

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend/backendtest"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

func mustGraph(t *testing.T, specs []stack.Spec) *stack.Graph {
	t.Helper()
	g, err := stack.NewGraph("test", specs)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func chainSpecs() []stack.Spec {
	return []stack.Spec{
		{Name: "a"},
		{Name: "b", DependsOn: []string{"a"}},
		{Name: "c", DependsOn: []string{"b"}},
		{Name: "d", DependsOn: []string{"c"}},
	}
}

func TestTeardownReverseOrderAllDestroyed(t *testing.T) {
	fake := backendtest.New()
	orch := &Orchestrator{Backend: fake}
	report := orch.Teardown(context.Background(), mustGraph(t, chainSpecs()))

	want := []string{"d", "c", "b", "a"}
	if !reflect.DeepEqual(fake.DeprovisionCalls, want) {
		t.Fatalf("deprovision order = %v, want %v", fake.DeprovisionCalls, want)
	}
	if report.Failed() {
		t.Fatalf("report unexpectedly failed: %+v", report.Outcomes)
	}
	for i, o := range report.Outcomes {
		if o.Stack != want[i] || o.Status != backend.DeprovisionDestroyed {
			t.Fatalf("outcome[%d] = %+v, want %s destroyed", i, o, want[i])
		}
	}
}

func TestTeardownContinuesPastFailure(t *testing.T) {
	fake := backendtest.New()
	fake.FailDeprovision["c"] = "deletion protection enabled"

	orch := &Orchestrator{Backend: fake}
	report := orch.Teardown(context.Background(), mustGraph(t, chainSpecs()))

	if len(fake.DeprovisionCalls) != 4 {
		t.Fatalf("deprovision called %d times, want 4 (every stack attempted)", len(fake.DeprovisionCalls))
	}
	if !report.Failed() {
		t.Fatalf("report must fail in aggregate")
	}
	var failed *Outcome
	for i := range report.Outcomes {
		if report.Outcomes[i].Stack == "c" {
			failed = &report.Outcomes[i]
		}
	}
	if failed == nil || failed.Status != backend.DeprovisionFailed {
		t.Fatalf("missing failed outcome for c: %+v", report.Outcomes)
	}
	if !strings.Contains(failed.Detail, "deletion protection") {
		t.Fatalf("failure detail = %q", failed.Detail)
	}
}

func TestTeardownNotFoundIsSuccess(t *testing.T) {
	fake := backendtest.New()
	fake.Absent["b"] = true
	fake.Absent["d"] = true

	orch := &Orchestrator{Backend: fake}
	report := orch.Teardown(context.Background(), mustGraph(t, chainSpecs()))
	if report.Failed() {
		t.Fatalf("absent stacks must not fail the run: %+v", report.Outcomes)
	}
	statuses := map[string]backend.DeprovisionStatus{}
	for _, o := range report.Outcomes {
		statuses[o.Stack] = o.Status
	}
	if statuses["b"] != backend.DeprovisionNotFound || statuses["d"] != backend.DeprovisionNotFound {
		t.Fatalf("statuses = %v", statuses)
	}
	if statuses["a"] != backend.DeprovisionDestroyed || statuses["c"] != backend.DeprovisionDestroyed {
		t.Fatalf("statuses = %v", statuses)
	}
}

func TestTeardownEmitsEvents(t *testing.T) {
	fake := backendtest.New()
	fake.FailDeprovision["a"] = "stuck"
	var events []stack.Event
	orch := &Orchestrator{
		Backend:   fake,
		Observers: []stack.EventObserver{stack.EventObserverFunc(func(ev stack.Event) { events = append(events, ev) })},
	}
	_ = orch.Teardown(context.Background(), mustGraph(t, chainSpecs()))

	last := events[len(events)-1]
	if last.Type != stack.RunCompleted || last.Status != "failed" {
		t.Fatalf("final event = %+v, want failed RunCompleted", last)
	}
}

func TestPrintReport(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	report := &Report{Outcomes: []Outcome{
		{Stack: "frontend", Status: backend.DeprovisionDestroyed},
		{Stack: "database", Status: backend.DeprovisionNotFound},
		{Stack: "network", Status: backend.DeprovisionFailed, Detail: "dependency violation"},
	}}
	var buf bytes.Buffer
	if err := PrintReport(&buf, report); err != nil {
		t.Fatalf("PrintReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"DESTROYED", "NOT FOUND", "FAILED", "dependency violation", "frontend", "database", "network"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report output missing %q:\n%s", want, out)
		}
	}
}
