// File: internal/deploy/deploy.go
// Brief: Fail-fast deploy orchestration with a placeholder redeploy pass.

package deploy

import (
	"context"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

type Orchestrator struct {
	Backend   backend.Backend
	Logger    *zap.Logger
	Observers []stack.EventObserver
}

// Deploy provisions every stack in plan order. The first failure aborts the
// run: a failed dependency invalidates everything downstream, and
// already-provisioned stacks are deliberately left standing (no rollback;
// backend calls are idempotent per stack, so the command is safe to rerun).
//
// Stacks whose parameters referenced their own not-yet-known outputs were
// provisioned with Placeholder values; after the primary pass each one is
// re-provisioned exactly once with the real values. A redeploy failure is a
// warning, not an error: the primary deployment is already live and only the
// dependent configuration is stale.
func (o *Orchestrator) Deploy(ctx context.Context, g *stack.Graph) (Context, error) {
	log := o.logger()
	dctx := Context{}
	var pending []PendingRedeploy

	o.emit(stack.Event{Type: stack.RunStarted, Phase: "deploy", Message: g.Name})
	for _, name := range g.Order() {
		spec := g.ByName(name)
		params, selfRefs, err := resolveParams(spec, dctx)
		if err != nil {
			o.finish("failed", err.Error())
			return nil, err
		}
		if len(selfRefs) > 0 {
			pending = append(pending, PendingRedeploy{
				Stack:  name,
				Reason: "awaiting self-referential output",
				Params: params,
			})
			o.emit(stack.Event{Type: stack.RedeployQueued, Stack: name, Phase: "deploy", Message: "awaiting self-referential output"})
			log.Info("stack provisioned with placeholder, redeploy queued",
				zap.String("stack", name),
				zap.Int("unresolved", len(selfRefs)))
		}

		o.emit(stack.Event{Type: stack.StackProvisioning, Stack: name, Phase: "deploy"})
		res, err := o.Backend.Provision(ctx, name, params)
		if err != nil {
			o.emit(stack.Event{Type: stack.StackFailed, Stack: name, Phase: "deploy", Status: "failed", Message: err.Error()})
			o.finish("failed", err.Error())
			return nil, err
		}
		if res.Status != backend.ProvisionSucceeded {
			perr := &backend.ProvisionError{Stack: name, Detail: res.Detail}
			o.emit(stack.Event{Type: stack.StackFailed, Stack: name, Phase: "deploy", Status: "failed", Message: perr.Error()})
			o.finish("failed", perr.Error())
			return nil, perr
		}
		dctx.Merge(name, res.Outputs)
		o.emit(stack.Event{Type: stack.StackSucceeded, Stack: name, Phase: "deploy", Status: "succeeded"})
		log.Info("stack provisioned", zap.String("stack", name), zap.Int("outputs", len(res.Outputs)))
	}

	for _, p := range pending {
		o.redeploy(ctx, g, p, dctx)
	}

	o.finish("succeeded", "")
	return dctx, nil
}

// redeploy re-resolves one pending stack against the fully populated context
// and re-provisions it in place. Runs at most once per entry; every failure
// path is a warning.
func (o *Orchestrator) redeploy(ctx context.Context, g *stack.Graph, p PendingRedeploy, dctx Context) {
	log := o.logger()
	spec := g.ByName(p.Stack)
	params, selfRefs, err := resolveParams(spec, dctx)
	if err != nil || len(selfRefs) > 0 {
		detail := "output still unresolved after provisioning"
		if err != nil {
			detail = err.Error()
		}
		o.emit(stack.Event{Type: stack.RedeployFailed, Stack: p.Stack, Phase: "redeploy", Status: "failed", Message: detail})
		log.Warn("redeploy skipped; dependent configuration is stale",
			zap.String("stack", p.Stack), zap.String("detail", detail))
		return
	}

	o.emit(stack.Event{Type: stack.RedeployStarted, Stack: p.Stack, Phase: "redeploy", Message: paramsDiff(p.Params, params)})
	res, err := o.Backend.Provision(ctx, p.Stack, params)
	if err == nil && res.Status != backend.ProvisionSucceeded {
		err = &backend.ProvisionError{Stack: p.Stack, Detail: res.Detail}
	}
	if err != nil {
		o.emit(stack.Event{Type: stack.RedeployFailed, Stack: p.Stack, Phase: "redeploy", Status: "failed", Message: err.Error()})
		log.Warn("redeploy failed; primary deployment is live, dependent configuration is stale",
			zap.String("stack", p.Stack), zap.Error(err))
		return
	}
	dctx.Merge(p.Stack, res.Outputs)
	o.emit(stack.Event{Type: stack.RedeploySucceeded, Stack: p.Stack, Phase: "redeploy", Status: "succeeded"})
	log.Info("stack re-provisioned with resolved outputs", zap.String("stack", p.Stack))
}

// paramsDiff renders a unified diff between the placeholder parameters a
// stack was first provisioned with and the final resolved set.
func paramsDiff(before, after map[string]string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(formatParams(before)),
		B:        difflib.SplitLines(formatParams(after)),
		FromFile: "placeholder",
		ToFile:   "resolved",
		Context:  2,
	}
	out, _ := difflib.GetUnifiedDiffString(diff)
	return out
}

func (o *Orchestrator) emit(ev stack.Event) {
	stack.Emit(o.Observers, ev)
}

func (o *Orchestrator) finish(status, message string) {
	o.emit(stack.Event{Type: stack.RunCompleted, Phase: "deploy", Status: status, Message: message})
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
