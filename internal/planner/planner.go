// Package planner defines the Planner contract and the closed-world registry
// built from the set of installed planners.
package planner

import (
	"context"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
	"github.com/pantsbuild/plangraph/internal/plan"
	"github.com/pantsbuild/plangraph/internal/product"
	"github.com/pantsbuild/plangraph/internal/promise"
)

// Scheduler is the narrow capability a Planner needs back from whatever is
// driving it: the ability to obtain a promise for a sub-dependency, possibly
// recursively invoking other planners. Defined here, at the point of use,
// rather than depending on the concrete scheduler package, so that package
// can depend on this one without creating an import cycle.
type Scheduler interface {
	Promise(ctx context.Context, subject addrs.Subject, productType product.Type, cfg config.Value) (promise.Promise, error)
}

// ProductSpec pairs one output product type a Planner can produce with the
// DNF formula describing what native or producible inputs a subject needs
// for that output to be producible.
type ProductSpec struct {
	Type    product.Type
	Formula product.Formula
}

// Planner is a single producer of one goal's set of output products.
type Planner interface {
	// GoalName is the user-visible verb this planner attaches to, e.g.
	// "compile" or "test".
	GoalName() string

	// ProductTypes lists each output product type this planner can produce,
	// paired with the DNF formula describing what native or producible
	// inputs a subject needs for that output to be producible.
	//
	// Declaration order matters and is preserved by the registry: spec.md
	// §5 guarantees that, within a subject, product types are processed in
	// registration order, so this returns an ordered slice rather than a
	// map (whose iteration order Go deliberately randomizes).
	ProductTypes() []ProductSpec

	// Plan produces the Plan for the given output product type and subject,
	// or nil if this planner declines to plan it after all (for example
	// because a dynamic check beyond what the DNF formula could express
	// fails). It may call back into scheduler to obtain promises for any
	// non-native inputs it needs, which may recursively invoke other
	// planners.
	Plan(ctx context.Context, scheduler Scheduler, productType product.Type, subject addrs.Subject, cfg config.Value) (*plan.Plan, error)
}

// Finalizer is an optional capability a Planner may additionally implement:
// a post-planning pass that runs once all per-subject planning for a
// (planner, output type) pair has completed, allowed to replace the plan
// set entirely (e.g. to aggregate N per-subject plans into one).
//
// The contract for a Finalizer: the union of subjects across the returned
// plans must equal the union of subjects across the plans it was given.
// Promises for any subject missing from that union become permanently
// dangling (see internal/scheduler's finalization pass).
type Finalizer interface {
	FinalizePlans(plans []*plan.Plan) ([]*plan.Plan, error)
}
