// Package solver implements the requirement solver: given a subject's
// native products and the planner registry, it determines which output
// products are producible, and flags inputs that were partially but never
// fully consumed.
package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/planner"
	"github.com/pantsbuild/plangraph/internal/product"
)

// PartialConsumption records, for one input product type that was producible
// but not enough to satisfy any single clause, which planners almost wanted
// it and what else each was missing.
type PartialConsumption map[planner.Planner]product.Set

// PartiallyConsumedInputsError reports that some producible input was used
// by at least one planner's clause but never fully satisfied any planner's
// requirement for the attempted output — the input would have unblocked a
// planner if paired with whatever else that planner needed, but nothing
// produces that missing piece either.
type PartiallyConsumedInputsError struct {
	Subject   addrs.Subject
	Output    product.Type
	Consumers map[product.Type]PartialConsumption
}

func (e *PartiallyConsumedInputsError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "solver: subject %v has inputs that no planner could fully consume while producing %q:\n", e.Subject.Primary(), e.Output)

	inputs := make([]product.Type, 0, len(e.Consumers))
	for t := range e.Consumers {
		inputs = append(inputs, t)
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i] < inputs[j] })

	for _, input := range inputs {
		byPlanner := e.Consumers[input]
		fmt.Fprintf(&sb, "  %s is present but unused because:\n", input)
		for p, missing := range byPlanner {
			fmt.Fprintf(&sb, "    %T also needs %v\n", p, missing.Slice())
		}
	}
	return sb.String()
}
