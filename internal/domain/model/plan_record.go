package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/event"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
	"github.com/cashroute/cashroute/pkg/events"
)

// PlanRecord is the root aggregate for plan history: the immutable outcome of
// one plan request, either a computed set of routes or a business refusal.
// Records are write-once; there are no transitions after construction.
type PlanRecord struct {
	events.EventCollector

	id              uuid.UUID
	targetAccountID string
	amount          decimal.Decimal
	deadline        time.Time
	requestedAt     time.Time
	status          valueobject.PlanStatus
	routes          []Route
	allRoutesRisky  bool
	errorMessage    string
	shortfall       *decimal.Decimal
	suggestion      string
	createdAt       time.Time
}

// NewComputedPlan records a plan request that produced selected routes.
func NewComputedPlan(goal Goal, result RoutingResult, requestedAt time.Time) (PlanRecord, error) {
	if goal.TargetAccountID == "" {
		return PlanRecord{}, fmt.Errorf("target account ID is required")
	}
	if !goal.Amount.IsPositive() {
		return PlanRecord{}, fmt.Errorf("goal amount must be positive, got: %s", goal.Amount.String())
	}
	if len(result.Routes) == 0 {
		return PlanRecord{}, fmt.Errorf("a computed plan needs at least one route")
	}

	routes := make([]Route, len(result.Routes))
	for i, r := range result.Routes {
		routes[i] = r.Clone()
	}

	rec := PlanRecord{
		id:              uuid.New(),
		targetAccountID: goal.TargetAccountID,
		amount:          goal.Amount,
		deadline:        goal.Deadline,
		requestedAt:     requestedAt,
		status:          valueobject.PlanComputed,
		routes:          routes,
		allRoutesRisky:  result.AllRoutesRisky,
		createdAt:       time.Now().UTC(),
	}

	rec.Record(event.NewRoutePlanComputed(
		rec.id, goal.TargetAccountID, goal.Amount, goal.Deadline, len(routes), result.AllRoutesRisky,
	))

	return rec, nil
}

// NewRejectedPlan records a plan request that ended in a business refusal.
func NewRejectedPlan(goal Goal, cause *RoutingError, requestedAt time.Time) (PlanRecord, error) {
	if goal.TargetAccountID == "" {
		return PlanRecord{}, fmt.Errorf("target account ID is required")
	}
	if cause == nil {
		return PlanRecord{}, fmt.Errorf("a rejected plan needs its routing error")
	}

	status, err := valueobject.NewPlanStatus(string(cause.Kind))
	if err != nil {
		return PlanRecord{}, fmt.Errorf("map routing error to plan status: %w", err)
	}

	rec := PlanRecord{
		id:              uuid.New(),
		targetAccountID: goal.TargetAccountID,
		amount:          goal.Amount,
		deadline:        goal.Deadline,
		requestedAt:     requestedAt,
		status:          status,
		errorMessage:    cause.Message,
		suggestion:      cause.Suggestion,
		createdAt:       time.Now().UTC(),
	}
	if cause.Shortfall != nil {
		s := *cause.Shortfall
		rec.shortfall = &s
	}

	rec.Record(event.NewRoutePlanRejected(
		rec.id, goal.TargetAccountID, goal.Amount, string(cause.Kind), cause.Message,
	))

	return rec, nil
}

// ReconstructPlan recreates a PlanRecord from persistence (no validation, no events).
func ReconstructPlan(
	id uuid.UUID,
	targetAccountID string,
	amount decimal.Decimal,
	deadline, requestedAt time.Time,
	status valueobject.PlanStatus,
	routes []Route,
	allRoutesRisky bool,
	errorMessage string,
	shortfall *decimal.Decimal,
	suggestion string,
	createdAt time.Time,
) PlanRecord {
	return PlanRecord{
		id:              id,
		targetAccountID: targetAccountID,
		amount:          amount,
		deadline:        deadline,
		requestedAt:     requestedAt,
		status:          status,
		routes:          routes,
		allRoutesRisky:  allRoutesRisky,
		errorMessage:    errorMessage,
		shortfall:       shortfall,
		suggestion:      suggestion,
		createdAt:       createdAt,
	}
}

// Accessors

func (p PlanRecord) ID() uuid.UUID { return p.id }

func (p PlanRecord) TargetAccountID() string { return p.targetAccountID }

func (p PlanRecord) Amount() decimal.Decimal { return p.amount }

func (p PlanRecord) Deadline() time.Time { return p.deadline }

func (p PlanRecord) RequestedAt() time.Time { return p.requestedAt }

func (p PlanRecord) Status() valueobject.PlanStatus { return p.status }

func (p PlanRecord) Routes() []Route { return p.routes }

func (p PlanRecord) AllRoutesRisky() bool { return p.allRoutesRisky }

func (p PlanRecord) ErrorMessage() string { return p.errorMessage }

func (p PlanRecord) Shortfall() *decimal.Decimal { return p.shortfall }

func (p PlanRecord) Suggestion() string { return p.suggestion }

func (p PlanRecord) CreatedAt() time.Time { return p.createdAt }
