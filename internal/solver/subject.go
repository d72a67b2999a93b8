package solver

import (
	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
	"github.com/pantsbuild/plangraph/internal/planner"
	"github.com/pantsbuild/plangraph/internal/product"
)

// ProducedTypesForSubject determines which of candidates are producible for
// subject given its native product set and the installed planner registry,
// per spec.md §4.3.
//
// It shares one set of fully/partially-consumed accumulators across every
// candidate so a product that fully satisfies one candidate's clause isn't
// flagged as "partially consumed" just because a different candidate's
// clause also looked at it and came up short.
//
// If any producible-but-never-fully-consumed input remains once every
// candidate has been attempted, it returns a *PartiallyConsumedInputsError
// instead of a result — this is deliberately a hard failure rather than a
// warning, matching scenario S5.
func ProducedTypesForSubject(registry *planner.Registry, subject addrs.Subject, native product.Set, candidates []product.Type) ([]product.Type, error) {
	acc := newAccumulators()
	r := newResolver(registry, native, acc)

	var producible []product.Type
	var lastAttempted product.Type
	for _, candidate := range candidates {
		lastAttempted = candidate
		if r.producible(candidate) {
			producible = append(producible, candidate)
		}
	}

	hard := make(map[product.Type]PartialConsumption)
	for input, byPlanner := range acc.partiallyConsumed {
		if acc.fullyConsumed.Has(input) {
			continue
		}
		hard[input] = byPlanner
	}
	if len(hard) > 0 {
		return nil, &PartiallyConsumedInputsError{
			Subject:   subject,
			Output:    lastAttempted,
			Consumers: hard,
		}
	}
	return producible, nil
}

// PlannersFor implements the planners_for lookup from spec.md §4.2: every
// planner registered to emit productType whose DNF requirement is
// satisfiable against subject's native products.
//
// When cfg is set, the result is additionally filtered to planners whose
// satisfied clause includes a requirement type matching cfg's cty type by
// name. spec.md §9 documents this as a known coarse selector — a
// configuration can only steer planner choice by what *kind* of input it
// resembles, not by its value — and this implementation preserves that
// limitation rather than fixing it, since fixing it would require every
// planner to declare a configuration-matching predicate the source
// implementation never asked for.
func PlannersFor(registry *planner.Registry, productType product.Type, subject addrs.Subject, native product.Set, cfg config.Value) []planner.Planner {
	r := newResolver(registry, native, newAccumulators())

	var cfgType product.Type
	if cfg.IsSet() {
		cfgType = product.Type(cfg.Raw().Type().FriendlyName())
	}

	var out []planner.Planner
	for p, formula := range registry.RequirementsFor(productType) {
		ok, satisfied := r.formulaHolds(formula)
		if !ok {
			continue
		}
		if cfg.IsSet() && !satisfied.Has(cfgType) {
			continue
		}
		out = append(out, p)
	}
	return out
}
