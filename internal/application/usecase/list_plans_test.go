package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/application/usecase"
	"github.com/cashroute/cashroute/internal/domain/model"
)

func TestListPlans_DefaultsPageSize(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockPlanRepository{
		listRecentFunc: func(_ context.Context, limit, offset int) ([]model.PlanRecord, int, error) {
			gotLimit, gotOffset = limit, offset
			return nil, 0, nil
		},
	}
	uc := usecase.NewListPlans(repo)

	resp, err := uc.Execute(context.Background(), dto.ListPlansRequest{})

	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)
	assert.Empty(t, resp.Plans)
	assert.Equal(t, 0, resp.TotalCount)
}

func TestListPlans_ClampsPageSizeAndOffset(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockPlanRepository{
		listRecentFunc: func(_ context.Context, limit, offset int) ([]model.PlanRecord, int, error) {
			gotLimit, gotOffset = limit, offset
			return nil, 0, nil
		},
	}
	uc := usecase.NewListPlans(repo)

	_, err := uc.Execute(context.Background(), dto.ListPlansRequest{PageSize: 5000, Offset: -3})

	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
	assert.Equal(t, 0, gotOffset)
}

func TestListPlans_EncodesRecordsWithTotal(t *testing.T) {
	computed := computedRecord(t)
	rejected := rejectedRecord(t)
	repo := &mockPlanRepository{
		listRecentFunc: func(context.Context, int, int) ([]model.PlanRecord, int, error) {
			return []model.PlanRecord{computed, rejected}, 42, nil
		},
	}
	uc := usecase.NewListPlans(repo)

	resp, err := uc.Execute(context.Background(), dto.ListPlansRequest{PageSize: 2})

	require.NoError(t, err)
	assert.Equal(t, 42, resp.TotalCount)
	require.Len(t, resp.Plans, 2)
	assert.Equal(t, "computed", resp.Plans[0].Status)
	assert.Equal(t, "past_deadline", resp.Plans[1].Status)
}

func TestListPlans_RepositoryErrorPropagates(t *testing.T) {
	repo := &mockPlanRepository{
		listRecentFunc: func(context.Context, int, int) ([]model.PlanRecord, int, error) {
			return nil, 0, errors.New("connection reset")
		},
	}
	uc := usecase.NewListPlans(repo)

	_, err := uc.Execute(context.Background(), dto.ListPlansRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list plans")
}
