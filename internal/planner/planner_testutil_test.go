package planner

import (
	"context"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
	"github.com/pantsbuild/plangraph/internal/plan"
	"github.com/pantsbuild/plangraph/internal/product"
	"github.com/pantsbuild/plangraph/internal/promise"
)

// fakePlanner is a minimal Planner used across this package's tests.
type fakePlanner struct {
	goal    string
	outputs []ProductSpec
	planFn  func(ctx context.Context, s Scheduler, productType product.Type, subject addrs.Subject, cfg config.Value) (*plan.Plan, error)
}

func (f *fakePlanner) GoalName() string { return f.goal }

func (f *fakePlanner) ProductTypes() []ProductSpec { return f.outputs }

func (f *fakePlanner) Plan(ctx context.Context, s Scheduler, productType product.Type, subject addrs.Subject, cfg config.Value) (*plan.Plan, error) {
	if f.planFn == nil {
		return nil, nil
	}
	return f.planFn(ctx, s, productType, subject, cfg)
}

type noopScheduler struct{}

func (noopScheduler) Promise(ctx context.Context, subject addrs.Subject, productType product.Type, cfg config.Value) (promise.Promise, error) {
	panic("not used")
}
