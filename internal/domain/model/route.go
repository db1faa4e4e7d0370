package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// TransferStep is one directed hop of a route: move Amount from FromID to
// ToID at Speed, paying Fee, landing at Arrival. The amount a step carries is
// the full allocation of its originating source account.
type TransferStep struct {
	FromID  string
	ToID    string
	Amount  decimal.Decimal
	Speed   valueobject.TransferSpeed
	Fee     decimal.Decimal
	Arrival time.Time
}

// Route is one complete way of moving the goal amount through a source
// combination. TotalFee is the sum of step fees and Arrival the latest step
// arrival. Category and Reasoning stay empty until the selector picks the
// route; RiskScore and RiskLevel until the risk calculator scores it.
type Route struct {
	Category  valueobject.RouteCategory
	Steps     []TransferStep
	TotalFee  decimal.Decimal
	Arrival   time.Time
	RiskLevel valueobject.RiskLevel
	RiskScore float64
	Reasoning string
}

// Clone returns a copy of the route with its step slice duplicated, so a
// selected route handed to callers cannot alias the candidate set.
func (r Route) Clone() Route {
	dup := r
	dup.Steps = make([]TransferStep, len(r.Steps))
	copy(dup.Steps, r.Steps)
	return dup
}

// StepCount returns the number of hops in the route.
func (r Route) StepCount() int {
	return len(r.Steps)
}
