// Package scheduler implements LocalScheduler, the single-threaded,
// synchronous driver that turns a BuildRequest into an ExecutionGraph by
// issuing promises, invoking planners, and running the finalization pass.
package scheduler

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
	"github.com/pantsbuild/plangraph/internal/graph"
	"github.com/pantsbuild/plangraph/internal/mapper"
	"github.com/pantsbuild/plangraph/internal/plan"
	"github.com/pantsbuild/plangraph/internal/planner"
	"github.com/pantsbuild/plangraph/internal/product"
	"github.com/pantsbuild/plangraph/internal/promise"
	"github.com/pantsbuild/plangraph/internal/solver"
)

// BuildRequest is (goals, addressable roots) supplied by the CLI front end
// (out of scope for this core).
type BuildRequest struct {
	Goals            []string
	AddressableRoots []addrs.Address
}

// LocalScheduler is the top-level planning driver. It owns exactly one
// ProductMapper and one per-session finalization index; it is a one-shot
// object, not meant to be reused across BuildRequests (spec.md §5).
type LocalScheduler struct {
	graph    addrs.Graph
	registry *planner.Registry
	mapper   *mapper.ProductMapper

	plansByPlannerByOutput map[planner.Planner]map[product.Type][]*plan.Plan

	sessionID string
}

// NewLocalScheduler builds a scheduler over the given address graph and
// installed planner registry.
func NewLocalScheduler(g addrs.Graph, registry *planner.Registry) *LocalScheduler {
	return &LocalScheduler{
		graph:                  g,
		registry:               registry,
		mapper:                 mapper.New(),
		plansByPlannerByOutput: make(map[planner.Planner]map[product.Type][]*plan.Plan),
		sessionID:              uuid.NewString(),
	}
}

// Promise implements planner.Scheduler: it is the narrow capability a
// Planner's Plan method calls back into for its own sub-dependencies, and is
// also called directly by ExecutionGraph construction for root products.
func (s *LocalScheduler) Promise(ctx context.Context, subject addrs.Subject, productType product.Type, cfg config.Value) (promise.Promise, error) {
	pr := promise.New(productType, subject, cfg)

	if existing := s.mapper.Promised(pr); existing != nil {
		log.Printf("[TRACE] session=%s promise %s already planned, reusing", s.sessionID, pr)
		return pr, nil
	}

	native := nativeProductsOf(subject)

	type candidate struct {
		producer planner.Planner
		plan     *plan.Plan
	}
	var candidates []candidate

	for _, p := range solver.PlannersFor(s.registry, productType, subject, native, cfg) {
		planned, err := p.Plan(ctx, s, productType, subject, cfg)
		if err != nil {
			return promise.Promise{}, err
		}
		if planned != nil {
			candidates = append(candidates, candidate{producer: p, plan: planned})
		}
	}

	if native.Has(productType) {
		lifted, err := newLiftPlan(subject, productType)
		if err != nil {
			return promise.Promise{}, err
		}
		candidates = append(candidates, candidate{producer: NativeLift, plan: lifted})
	}

	switch len(candidates) {
	case 0:
		return promise.Promise{}, &NoProducersError{ProductType: productType, Subject: subject}
	case 1:
		// fall through
	default:
		producers := make([]planner.Planner, len(candidates))
		for i, c := range candidates {
			producers[i] = c.producer
		}
		return promise.Promise{}, &ConflictingProducersError{ProductType: productType, Subject: subject, Planners: producers}
	}

	chosen := candidates[0]
	primary, err := s.mapper.RegisterPromises(productType, chosen.plan, &subject, cfg)
	if err != nil {
		return promise.Promise{}, &SchedulingError{ProductType: productType, Subject: subject, Err: err}
	}

	if chosen.producer != NativeLift {
		byOutput := s.plansByPlannerByOutput[chosen.producer]
		if byOutput == nil {
			byOutput = make(map[product.Type][]*plan.Plan)
			s.plansByPlannerByOutput[chosen.producer] = byOutput
		}
		byOutput[productType] = append(byOutput[productType], chosen.plan)
	}

	log.Printf("[DEBUG] session=%s planned %s for subject %v via %T", s.sessionID, productType, subject.Primary(), chosen.producer)
	return primary, nil
}

// ExecutionGraph resolves a BuildRequest into its ExecutionGraph: roots
// resolved through the address graph, producible outputs planned in goal
// then subject then output order, followed by the finalization pass.
func (s *LocalScheduler) ExecutionGraph(ctx context.Context, req BuildRequest) (*graph.ExecutionGraph, error) {
	subjects := make([]addrs.Subject, 0, len(req.AddressableRoots))
	for _, addr := range req.AddressableRoots {
		obj, err := s.graph.Resolve(ctx, addr)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, addrs.Of(obj))
	}

	var roots []promise.Promise
	for _, goal := range req.Goals {
		outputs := s.registry.OutputTypesForGoal(goal)
		for _, subject := range subjects {
			native := nativeProductsOf(subject)
			producible, err := solver.ProducedTypesForSubject(s.registry, subject, native, outputs)
			if err != nil {
				return nil, err
			}
			for _, output := range producible {
				pr, err := s.Promise(ctx, subject, output, config.None())
				if err != nil {
					return nil, err
				}
				roots = append(roots, pr)
			}
		}
	}

	if err := s.finalize(); err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] session=%s execution graph built with %d root promises", s.sessionID, len(roots))
	return graph.New(s.mapper, roots), nil
}

// finalize runs each planner's optional FinalizePlans once per output type,
// per spec.md §4.4.2 step 4: a planner that returns a different slice than
// it was given has its replacement plans re-registered for every subject
// they cover, with no primary-subject constraint.
func (s *LocalScheduler) finalize() error {
	for p, byOutput := range s.plansByPlannerByOutput {
		finalizer, ok := p.(planner.Finalizer)
		if !ok {
			continue
		}
		for output, plans := range byOutput {
			replacement, err := finalizer.FinalizePlans(plans)
			if err != nil {
				return &SchedulingError{ProductType: output, Err: err}
			}
			if sameSlice(replacement, plans) {
				continue
			}
			for _, rp := range replacement {
				s.mapper.RegisterForAllSubjects(output, rp, config.None())
			}
			log.Printf("[DEBUG] session=%s finalized %T/%s: %d plans -> %d plans", s.sessionID, p, output, len(plans), len(replacement))
		}
	}
	return nil
}

// sameSlice reports whether a and b share the same backing array — the Go
// analogue of the source's "is not the same object" identity check on the
// iterable finalize_plans returns.
func sameSlice(a, b []*plan.Plan) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
