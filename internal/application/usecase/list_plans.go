package usecase

import (
	"context"
	"fmt"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/domain/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListPlans returns stored plan records, newest first.
type ListPlans struct {
	planRepo port.PlanRepository
}

func NewListPlans(planRepo port.PlanRepository) *ListPlans {
	return &ListPlans{planRepo: planRepo}
}

func (uc *ListPlans) Execute(ctx context.Context, req dto.ListPlansRequest) (dto.ListPlansResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	records, total, err := uc.planRepo.ListRecent(ctx, pageSize, offset)
	if err != nil {
		return dto.ListPlansResponse{}, fmt.Errorf("list plans: %w", err)
	}

	plans := make([]dto.PlanRecordResponse, 0, len(records))
	for _, rec := range records {
		plans = append(plans, encodePlanRecord(rec))
	}

	return dto.ListPlansResponse{Plans: plans, TotalCount: total}, nil
}
