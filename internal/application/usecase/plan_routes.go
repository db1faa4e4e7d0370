package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/port"
	"github.com/cashroute/cashroute/internal/domain/service"
)

// PlanRoutes runs the routing pipeline for one request and records the
// outcome, computed or refused, as plan history. Domain events ride in the
// same repository save (transactional outbox), so a broker hiccup never
// fails a plan request.
type PlanRoutes struct {
	planner  *service.Planner
	planRepo port.PlanRepository
	clock    port.Clock

	plansTotal   metric.Int64Counter
	planDuration metric.Float64Histogram
}

func NewPlanRoutes(planner *service.Planner, planRepo port.PlanRepository, clock port.Clock) *PlanRoutes {
	meter := otel.Meter("cashroute.routing")
	plansTotal, _ := meter.Int64Counter("routing_plans_total",
		metric.WithDescription("Plan requests by outcome"))
	planDuration, _ := meter.Float64Histogram("routing_plan_duration_seconds",
		metric.WithDescription("Time spent computing one plan"))

	return &PlanRoutes{
		planner:      planner,
		planRepo:     planRepo,
		clock:        clock,
		plansTotal:   plansTotal,
		planDuration: planDuration,
	}
}

func (uc *PlanRoutes) Execute(ctx context.Context, req dto.PlanRoutesRequest) (dto.PlanRoutesResponse, error) {
	started := time.Now()

	goal, accounts, matrix, err := DecodePlanInput(req)
	if err != nil {
		return dto.PlanRoutesResponse{}, err
	}

	now := uc.clock.Now().UTC()
	if req.CurrentTime != nil {
		now = *req.CurrentTime
	}

	result, err := uc.planner.Plan(goal, accounts, matrix, now)
	uc.planDuration.Record(ctx, time.Since(started).Seconds())

	if err != nil {
		refusal, ok := model.AsRoutingError(err)
		if !ok {
			uc.plansTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "fault")))
			return dto.PlanRoutesResponse{}, err
		}
		uc.plansTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(refusal.Kind))))
		return uc.recordRejection(ctx, goal, refusal, now)
	}

	uc.plansTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "computed")))

	rec, err := model.NewComputedPlan(goal, result, now)
	if err != nil {
		return dto.PlanRoutesResponse{}, fmt.Errorf("record computed plan: %w", err)
	}
	if err := uc.planRepo.Save(ctx, rec); err != nil {
		return dto.PlanRoutesResponse{}, fmt.Errorf("save plan record: %w", err)
	}

	risky := result.AllRoutesRisky
	return dto.PlanRoutesResponse{
		PlanID:         rec.ID(),
		Routes:         EncodeRoutes(result.Routes),
		AllRoutesRisky: &risky,
	}, nil
}

// recordRejection stores the refusal as history and maps it onto the flat
// error fields of the response.
func (uc *PlanRoutes) recordRejection(ctx context.Context, goal model.Goal, refusal *model.RoutingError, now time.Time) (dto.PlanRoutesResponse, error) {
	rec, err := model.NewRejectedPlan(goal, refusal, now)
	if err != nil {
		return dto.PlanRoutesResponse{}, fmt.Errorf("record rejected plan: %w", err)
	}
	if err := uc.planRepo.Save(ctx, rec); err != nil {
		return dto.PlanRoutesResponse{}, fmt.Errorf("save plan record: %w", err)
	}

	return dto.PlanRoutesResponse{
		PlanID:     rec.ID(),
		Error:      string(refusal.Kind),
		Message:    refusal.Message,
		Shortfall:  refusal.Shortfall,
		Suggestion: refusal.Suggestion,
	}, nil
}
