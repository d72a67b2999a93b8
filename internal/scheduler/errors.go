package scheduler

import (
	"fmt"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/planner"
	"github.com/pantsbuild/plangraph/internal/product"
)

// NoProducersError reports that promise found zero candidate planners and
// the subject carries no matching native product.
type NoProducersError struct {
	ProductType product.Type
	Subject     addrs.Subject
}

func (e *NoProducersError) Error() string {
	return fmt.Sprintf("scheduler: no planner produces %q for subject %v", e.ProductType, e.Subject.Primary())
}

// ConflictingProducersError reports that promise found two or more
// candidate producers (planners, or a planner alongside a native lift) for
// the same (product type, subject) — merging producers is future work (see
// spec.md §1 Non-goals), so this is currently always fatal.
type ConflictingProducersError struct {
	ProductType product.Type
	Subject     addrs.Subject
	Planners    []planner.Planner
}

func (e *ConflictingProducersError) Error() string {
	return fmt.Sprintf("scheduler: %d producers can emit %q for subject %v: %v", len(e.Planners), e.ProductType, e.Subject.Primary(), e.Planners)
}

// SchedulingError wraps a lower-level error (typically a
// mapper.InvalidRegistrationError or a Finalizer failure) with the
// (product type, subject) context that was in scope when it surfaced.
type SchedulingError struct {
	ProductType product.Type
	Subject     addrs.Subject
	Err         error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("scheduler: scheduling %q for subject %v: %v", e.ProductType, e.Subject.Primary(), e.Err)
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}
