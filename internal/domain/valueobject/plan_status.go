package valueobject

import "fmt"

// PlanStatus records how a stored plan request ended: computed with routes,
// or rejected with one of the business outcomes.
type PlanStatus struct {
	value string
}

var (
	PlanComputed          = PlanStatus{"computed"}
	PlanPastDeadline      = PlanStatus{"past_deadline"}
	PlanInsufficientFunds = PlanStatus{"insufficient_funds"}
	PlanNoPath            = PlanStatus{"no_path"}
)

var knownPlanStatuses = map[string]PlanStatus{
	"computed":           PlanComputed,
	"past_deadline":      PlanPastDeadline,
	"insufficient_funds": PlanInsufficientFunds,
	"no_path":            PlanNoPath,
}

// NewPlanStatus validates and creates a PlanStatus from a string.
func NewPlanStatus(s string) (PlanStatus, error) {
	st, ok := knownPlanStatuses[s]
	if !ok {
		return PlanStatus{}, fmt.Errorf("unknown plan status %q", s)
	}
	return st, nil
}

// String returns the string representation of the status.
func (s PlanStatus) String() string {
	return s.value
}

// IsComputed reports whether the plan produced routes.
func (s PlanStatus) IsComputed() bool {
	return s.value == "computed"
}

// IsZero returns true if the status is empty.
func (s PlanStatus) IsZero() bool {
	return s.value == ""
}

// Equal returns true if two statuses are equal.
func (s PlanStatus) Equal(other PlanStatus) bool {
	return s.value == other.value
}
