package plan

import (
	"context"

	"github.com/mitchellh/copystructure"
)

// Binding is an opaque capsule holding a task and its fully-bound inputs.
// Invoking it executes the task.
type Binding struct {
	task   Categorization
	inputs map[string]any
}

// Bind replaces every Promise leaf in p's input tree with the value resolve
// returns for it, producing a Binding ready to invoke.
//
// The bound inputs are deep-copied with mitchellh/copystructure before being
// handed back, so a task that mutates the map it receives can never corrupt
// the Plan it was bound from — the same Plan may be re-bound again later
// (for instance after finalize_plans re-registers it for additional
// subjects).
func (p *Plan) Bind(resolve Resolver) (Binding, error) {
	bound := make(map[string]any, len(p.Inputs))
	for name, node := range p.Inputs {
		v, err := node.Bind(resolve)
		if err != nil {
			return Binding{}, err
		}
		bound[name] = v
	}

	copied, err := copystructure.Copy(bound)
	if err != nil {
		return Binding{}, err
	}
	boundCopy, ok := copied.(map[string]any)
	if !ok {
		// copystructure.Copy preserves the concrete type of its input for
		// map[string]any; this branch only exists to satisfy the type
		// assertion and should be unreachable in practice.
		boundCopy = bound
	}

	return Binding{task: p.Task, inputs: boundCopy}, nil
}

// Invoke executes the bound task with its bound inputs.
func (b Binding) Invoke(ctx context.Context) (any, error) {
	return b.task.Invoke(ctx, b.inputs)
}

// Input returns the value bound to the given input name — the statically
// typed replacement for attribute access on a dynamically-typed Plan.
func (b Binding) Input(name string) (any, bool) {
	v, ok := b.inputs[name]
	return v, ok
}
