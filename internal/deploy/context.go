// File: internal/deploy/context.go
// Brief: Per-run deployment context and parameter resolution.

// Package deploy runs a deployment plan against the provisioning backend:
// sequential fail-fast provisioning plus a second pass that re-provisions
// stacks whose parameters depended on their own discovered outputs.
package deploy

import (
	"sort"
	"strings"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

// Placeholder is substituted for a parameter reference whose value the
// backend only assigns while provisioning the referencing stack itself. The
// stack is queued for a redeploy that swaps in the real value.
const Placeholder = "<pending>"

// Context accumulates stack outputs as the run progresses, keyed by stack
// name. It lives for a single run and is never persisted: reruns rediscover
// state from the backend.
type Context map[string]map[string]string

// Merge records a stack's outputs, replacing any prior entry for that stack.
func (c Context) Merge(name string, outputs map[string]string) {
	merged := make(map[string]string, len(outputs))
	for k, v := range outputs {
		merged[k] = v
	}
	c[name] = merged
}

// Lookup resolves one output reference.
func (c Context) Lookup(ref stack.Ref) (string, bool) {
	outputs, ok := c[ref.Stack]
	if !ok {
		return "", false
	}
	v, ok := outputs[ref.Key]
	return v, ok
}

// PendingRedeploy marks a stack that was provisioned with Placeholder values
// and must be re-provisioned once its own outputs are known.
type PendingRedeploy struct {
	Stack  string
	Reason string
	Params map[string]string
}

// resolveParams substitutes output references in a spec's parameters.
// References to the stack's own outputs that are not yet in the context get
// Placeholder and are reported in selfRefs; a reference to an
// already-provisioned stack that lacks the key is fatal.
func resolveParams(spec *stack.Spec, dctx Context) (params map[string]string, selfRefs []stack.Ref, err error) {
	params = make(map[string]string, len(spec.Parameters))
	for key, value := range spec.Parameters {
		var missing []stack.Ref
		resolved, complete := stack.SubstituteRefs(value, func(ref stack.Ref) (string, bool) {
			if v, ok := dctx.Lookup(ref); ok {
				return v, true
			}
			missing = append(missing, ref)
			return "", false
		}, Placeholder)
		if !complete {
			for _, ref := range missing {
				if _, provisioned := dctx[ref.Stack]; provisioned || ref.Stack != spec.Name {
					return nil, nil, &backend.OutputNotFoundError{Stack: ref.Stack, Key: ref.Key, Required: true}
				}
				selfRefs = append(selfRefs, ref)
			}
		}
		params[key] = resolved
	}
	return params, selfRefs, nil
}

// formatParams renders parameters one per line, sorted, for diffing and logs.
func formatParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(params[k])
		b.WriteString("\n")
	}
	return b.String()
}
