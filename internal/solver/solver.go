package solver

import (
	"github.com/pantsbuild/plangraph/internal/planner"
	"github.com/pantsbuild/plangraph/internal/product"
)

// accumulators carries the fully/partially-consumed bookkeeping across every
// candidate output resolved within one produced_types_for_subject call —
// "the same accumulators" spec.md §4.3 requires the recursive rule to share.
type accumulators struct {
	fullyConsumed     product.Set
	partiallyConsumed map[product.Type]PartialConsumption
}

func newAccumulators() *accumulators {
	return &accumulators{
		fullyConsumed:     make(product.Set),
		partiallyConsumed: make(map[product.Type]PartialConsumption),
	}
}

func (a *accumulators) recordFullClause(clause product.Clause) {
	for _, t := range clause {
		a.fullyConsumed.Add(t)
	}
}

func (a *accumulators) recordPartialClause(producibleReqs, missing []product.Type, p planner.Planner) {
	for _, c := range producibleReqs {
		byPlanner, ok := a.partiallyConsumed[c]
		if !ok {
			byPlanner = make(PartialConsumption)
			a.partiallyConsumed[c] = byPlanner
		}
		set, ok := byPlanner[p]
		if !ok {
			set = make(product.Set)
			byPlanner[p] = set
		}
		for _, m := range missing {
			set.Add(m)
		}
	}
}

// resolver evaluates producibility of product types against a fixed native
// product set and a fixed registry, memoizing as it goes and treating a
// type that is currently being resolved (i.e. part of a cyclic DNF
// specification) as not-yet-producible to guarantee termination.
//
// This resolves spec.md §9's open question ("the source is not explicitly
// memoized") in favor of explicit memoization plus an in-progress marker,
// chosen for determinism: the same (output, native set, registry) always
// produces the same answer within one solver run.
type resolver struct {
	registry  *planner.Registry
	native    product.Set
	memo      map[product.Type]bool
	resolving map[product.Type]bool
	acc       *accumulators
}

func newResolver(registry *planner.Registry, native product.Set, acc *accumulators) *resolver {
	return &resolver{
		registry:  registry,
		native:    native,
		memo:      make(map[product.Type]bool),
		resolving: make(map[product.Type]bool),
		acc:       acc,
	}
}

// producible implements the recursive rule from spec.md §4.3.
func (r *resolver) producible(output product.Type) bool {
	if v, ok := r.memo[output]; ok {
		return v
	}
	if r.resolving[output] {
		// Currently being resolved higher up the call stack: a cyclic DNF
		// specification degrades to "not producible" through this type
		// rather than recursing forever.
		return false
	}

	if r.native.Has(output) {
		r.memo[output] = true
		return true
	}
	if !r.registry.IsOutputProduct(output) {
		r.memo[output] = false
		return false
	}

	r.resolving[output] = true
	producible := false
	for p, formula := range r.registry.RequirementsFor(output) {
		for _, clause := range formula {
			ok, satisfied, missing := r.evaluateClause(clause)
			if ok {
				r.acc.recordFullClause(clause)
				producible = true
				continue
			}
			if len(satisfied) > 0 {
				r.acc.recordPartialClause(satisfied, missing, p)
			}
		}
	}
	delete(r.resolving, output)
	r.memo[output] = producible
	return producible
}

// evaluateClause reports whether every requirement in clause is producible,
// and regardless of the outcome, which requirements were producible
// ("satisfied") and which were not ("missing") — needed by the caller to
// record partial consumption when the clause as a whole fails.
func (r *resolver) evaluateClause(clause product.Clause) (ok bool, satisfied, missing []product.Type) {
	ok = true
	for _, req := range clause {
		if r.producible(req) {
			satisfied = append(satisfied, req)
		} else {
			ok = false
			missing = append(missing, req)
		}
	}
	return ok, satisfied, missing
}

// formulaHolds reports whether at least one clause of formula holds, and if
// so the set of requirement types the first satisfied clause consumed
// (used by PlannersFor's coarse by-type configuration filter).
func (r *resolver) formulaHolds(formula product.Formula) (bool, product.Set) {
	for _, clause := range formula {
		ok, satisfied, _ := r.evaluateClause(clause)
		if ok {
			return true, product.NewSet(satisfied...)
		}
	}
	return false, nil
}
