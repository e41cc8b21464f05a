// File: internal/teardown/teardown.go
// Brief: Best-effort teardown orchestration in reverse deploy order.

// Package teardown destroys every stack in reverse dependency order. Unlike
// deploy it never halts early: independent resources must not be blocked by
// one stuck stack, so each outcome is recorded and the run keeps going.
package teardown

import (
	"context"

	"go.uber.org/zap"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

// Outcome is one stack's teardown result.
type Outcome struct {
	Stack  string
	Status backend.DeprovisionStatus
	Detail string
}

// Report collects every attempted stack, in attempt order.
type Report struct {
	Outcomes []Outcome
}

// Failed reports whether any stack failed to deprovision. The run still
// attempted every stack; this only drives the exit status.
func (r *Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == backend.DeprovisionFailed {
			return true
		}
	}
	return false
}

type Orchestrator struct {
	Backend   backend.Backend
	Logger    *zap.Logger
	Observers []stack.EventObserver
}

// Teardown deprovisions all stacks in the graph's reverse order. NotFound is
// treated as success, keeping repeated teardowns idempotent. The report
// always covers every declared stack.
func (o *Orchestrator) Teardown(ctx context.Context, g *stack.Graph) *Report {
	log := o.logger()
	report := &Report{}

	o.emit(stack.Event{Type: stack.RunStarted, Phase: "teardown", Message: g.Name})
	for _, name := range g.ReverseOrder() {
		o.emit(stack.Event{Type: stack.StackDestroying, Stack: name, Phase: "teardown"})
		status, detail, err := o.Backend.Deprovision(ctx, name)
		if err != nil {
			status = backend.DeprovisionFailed
			detail = err.Error()
		}
		switch status {
		case backend.DeprovisionDestroyed:
			o.emit(stack.Event{Type: stack.StackDestroyed, Stack: name, Phase: "teardown", Status: "destroyed"})
			log.Info("stack destroyed", zap.String("stack", name))
		case backend.DeprovisionNotFound:
			o.emit(stack.Event{Type: stack.StackNotFound, Stack: name, Phase: "teardown", Status: "not-found"})
			log.Info("stack already absent", zap.String("stack", name))
		default:
			status = backend.DeprovisionFailed
			o.emit(stack.Event{Type: stack.StackDestroyFailed, Stack: name, Phase: "teardown", Status: "failed", Message: detail})
			log.Warn("stack deprovision failed, continuing", zap.String("stack", name), zap.String("detail", detail))
		}
		report.Outcomes = append(report.Outcomes, Outcome{Stack: name, Status: status, Detail: detail})
	}

	status := "succeeded"
	if report.Failed() {
		status = "failed"
	}
	o.emit(stack.Event{Type: stack.RunCompleted, Phase: "teardown", Status: status})
	return report
}

func (o *Orchestrator) emit(ev stack.Event) {
	stack.Emit(o.Observers, ev)
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
