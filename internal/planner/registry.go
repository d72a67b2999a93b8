package planner

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/pantsbuild/plangraph/internal/product"
)

// Registry is the closed-world index of installed planners: by goal name,
// by output product type (with each planner's DNF requirement for that
// type), and the overall set of types any planner can emit.
//
// Built once from the installed Planner set; there is no dynamic
// registration after construction.
type Registry struct {
	byGoal         map[string][]Planner
	requirements   map[product.Type]map[Planner]product.Formula
	outputProducts product.Set
}

// NewRegistry builds a Registry from the given planners.
//
// Construction validates the planner set and aggregates every problem found
// (rather than stopping at the first) with hashicorp/go-multierror, so a
// caller assembling a large planner set from several packages sees every
// misconfiguration in one error instead of fixing them one at a time.
func NewRegistry(planners []Planner) (*Registry, error) {
	r := &Registry{
		byGoal:         make(map[string][]Planner),
		requirements:   make(map[product.Type]map[Planner]product.Formula),
		outputProducts: make(product.Set),
	}

	var errs *multierror.Error
	for _, p := range planners {
		goal := p.GoalName()
		if goal == "" {
			errs = multierror.Append(errs, fmt.Errorf("planner %T declares an empty goal name", p))
			continue
		}
		r.byGoal[goal] = append(r.byGoal[goal], p)

		for _, spec := range p.ProductTypes() {
			outputType, formula := spec.Type, spec.Formula
			if len(formula) == 0 {
				errs = multierror.Append(errs, fmt.Errorf("planner %T declares output %q with an empty (unsatisfiable) DNF formula", p, outputType))
			}
			if r.requirements[outputType] == nil {
				r.requirements[outputType] = make(map[Planner]product.Formula)
			}
			r.requirements[outputType][p] = formula
			r.outputProducts.Add(outputType)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Goal returns the planners attached to the given goal name, in the order
// they were installed.
func (r *Registry) Goal(name string) []Planner {
	return r.byGoal[name]
}

// OutputTypesForGoal returns every output product type declared by any
// planner attached to the given goal, in planner-installation order and
// then declaration order within each planner (spec.md §5: "within a
// subject, product types in registration order").
func (r *Registry) OutputTypesForGoal(name string) []product.Type {
	seen := make(product.Set)
	var out []product.Type
	for _, p := range r.byGoal[name] {
		for _, spec := range p.ProductTypes() {
			if !seen.Has(spec.Type) {
				seen.Add(spec.Type)
				out = append(out, spec.Type)
			}
		}
	}
	return out
}

// RequirementsFor returns every (planner, formula) pair registered for the
// given output product type.
func (r *Registry) RequirementsFor(outputType product.Type) map[Planner]product.Formula {
	return r.requirements[outputType]
}

// IsOutputProduct reports whether any installed planner can emit t.
func (r *Registry) IsOutputProduct(t product.Type) bool {
	return r.outputProducts.Has(t)
}
