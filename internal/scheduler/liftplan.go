package scheduler

import (
	"context"
	"fmt"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
	"github.com/pantsbuild/plangraph/internal/plan"
	"github.com/pantsbuild/plangraph/internal/planner"
	"github.com/pantsbuild/plangraph/internal/product"
)

// nativeLiftPlanner is a sentinel Planner value standing in for "the subject
// already carries this artifact" in diagnostics and in the candidate list
// promise builds — it is never installed in a Registry and its Plan method
// is never called.
type nativeLiftPlanner struct{}

func (nativeLiftPlanner) GoalName() string                    { return "<native>" }
func (nativeLiftPlanner) ProductTypes() []planner.ProductSpec { return nil }
func (nativeLiftPlanner) Plan(context.Context, planner.Scheduler, product.Type, addrs.Subject, config.Value) (*plan.Plan, error) {
	panic("scheduler: nativeLiftPlanner.Plan is never invoked through the registry")
}

func (nativeLiftPlanner) String() string { return "<native lift>" }

// NativeLift is the sentinel producer reported in ConflictingProducersError
// when a native product collides with a real planner's output.
var NativeLift planner.Planner = nativeLiftPlanner{}

// liftNativeProduct is the task a synthetic lift Plan is categorized with.
// Actual artifact retrieval belongs to on-disk product storage, an external
// collaborator out of scope for this core (spec.md §1); this stub exists so
// the lift is a real, inspectable, structurally-hashable Plan rather than an
// invisible planning short-circuit.
func liftNativeProduct(ctx context.Context, inputs map[string]any) (any, error) {
	return nil, fmt.Errorf("scheduler: lift_native_product has no executor wired into this core; retrieving %v for %v is the host's responsibility", inputs["productType"], inputs["subject"])
}

// newLiftPlan builds the synthetic Plan for a native product.
func newLiftPlan(subject addrs.Subject, productType product.Type) (*plan.Plan, error) {
	return plan.New(
		plan.Func(liftNativeProduct),
		[]addrs.Subject{subject},
		map[string]any{
			"subject":     fmt.Sprintf("%v", subject.UniqueKey()),
			"productType": string(productType),
		},
	)
}
