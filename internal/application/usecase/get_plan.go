package usecase

import (
	"context"
	"fmt"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/domain/port"
)

// GetPlan retrieves one stored plan record.
type GetPlan struct {
	planRepo port.PlanRepository
}

func NewGetPlan(planRepo port.PlanRepository) *GetPlan {
	return &GetPlan{planRepo: planRepo}
}

func (uc *GetPlan) Execute(ctx context.Context, req dto.GetPlanRequest) (dto.PlanRecordResponse, error) {
	rec, err := uc.planRepo.FindByID(ctx, req.PlanID)
	if err != nil {
		return dto.PlanRecordResponse{}, fmt.Errorf("find plan %s: %w", req.PlanID, err)
	}
	return encodePlanRecord(rec), nil
}
