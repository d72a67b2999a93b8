package mapper

import (
	"fmt"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/plan"
)

// InvalidRegistrationError reports that a plan was registered with a primary
// subject that is not a member of the plan's subject set.
type InvalidRegistrationError struct {
	Plan            *plan.Plan
	PrimarySubject  addrs.Subject
}

func (e *InvalidRegistrationError) Error() string {
	return fmt.Sprintf("mapper: primary subject %v is not among the plan's subjects", e.PrimarySubject.Primary())
}
