package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/pkg/events"
)

const AggregateTypeRoutePlan = "RoutePlan"

// Topic is the Kafka topic all route-plan events are published to.
const Topic = "routing.plan.events"

// RoutePlanComputed is emitted when a plan request produced selected routes.
type RoutePlanComputed struct {
	events.BaseEvent
	PlanID          uuid.UUID       `json:"plan_id"`
	TargetAccountID string          `json:"target_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Deadline        time.Time       `json:"deadline"`
	RouteCount      int             `json:"route_count"`
	AllRoutesRisky  bool            `json:"all_routes_risky"`
}

func NewRoutePlanComputed(planID uuid.UUID, targetAccountID string, amount decimal.Decimal, deadline time.Time, routeCount int, allRoutesRisky bool) RoutePlanComputed {
	payload, _ := json.Marshal(struct {
		PlanID          uuid.UUID       `json:"plan_id"`
		TargetAccountID string          `json:"target_account_id"`
		Amount          decimal.Decimal `json:"amount"`
		Deadline        time.Time       `json:"deadline"`
		RouteCount      int             `json:"route_count"`
		AllRoutesRisky  bool            `json:"all_routes_risky"`
	}{planID, targetAccountID, amount, deadline, routeCount, allRoutesRisky})

	return RoutePlanComputed{
		BaseEvent:       events.NewBaseEvent("routing.plan.computed", planID.String(), AggregateTypeRoutePlan, payload),
		PlanID:          planID,
		TargetAccountID: targetAccountID,
		Amount:          amount,
		Deadline:        deadline,
		RouteCount:      routeCount,
		AllRoutesRisky:  allRoutesRisky,
	}
}

// RoutePlanRejected is emitted when a plan request ended in a business
// refusal (past deadline, insufficient funds, or no path).
type RoutePlanRejected struct {
	events.BaseEvent
	PlanID          uuid.UUID       `json:"plan_id"`
	TargetAccountID string          `json:"target_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	Detail          string          `json:"detail"`
}

func NewRoutePlanRejected(planID uuid.UUID, targetAccountID string, amount decimal.Decimal, reason, detail string) RoutePlanRejected {
	payload, _ := json.Marshal(struct {
		PlanID          uuid.UUID       `json:"plan_id"`
		TargetAccountID string          `json:"target_account_id"`
		Amount          decimal.Decimal `json:"amount"`
		Reason          string          `json:"reason"`
		Detail          string          `json:"detail"`
	}{planID, targetAccountID, amount, reason, detail})

	return RoutePlanRejected{
		BaseEvent:       events.NewBaseEvent("routing.plan.rejected", planID.String(), AggregateTypeRoutePlan, payload),
		PlanID:          planID,
		TargetAccountID: targetAccountID,
		Amount:          amount,
		Reason:          reason,
		Detail:          detail,
	}
}
