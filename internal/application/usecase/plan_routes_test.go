package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/application/usecase"
	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/port"
	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/internal/infrastructure/clock"
	"github.com/cashroute/cashroute/pkg/testutil"
)

// --- Mock implementations ---

type mockPlanRepository struct {
	saveFunc        func(ctx context.Context, rec model.PlanRecord) error
	findByIDFunc    func(ctx context.Context, id uuid.UUID) (model.PlanRecord, error)
	listRecentFunc  func(ctx context.Context, limit, offset int) ([]model.PlanRecord, int, error)
	deleteOlderFunc func(ctx context.Context, cutoff time.Time) (int64, error)
	savedRecords    []model.PlanRecord
}

func (m *mockPlanRepository) Save(ctx context.Context, rec model.PlanRecord) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, rec)
	}
	m.savedRecords = append(m.savedRecords, rec)
	return nil
}

func (m *mockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (model.PlanRecord, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.PlanRecord{}, port.ErrPlanNotFound
}

func (m *mockPlanRepository) ListRecent(ctx context.Context, limit, offset int) ([]model.PlanRecord, int, error) {
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockPlanRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.deleteOlderFunc != nil {
		return m.deleteOlderFunc(ctx, cutoff)
	}
	return 0, nil
}

// --- Fixtures ---

func accountDTO(id, balance string) dto.AccountDTO {
	return dto.AccountDTO{
		ID:          id,
		Name:        id,
		Type:        "checking",
		Balance:     decimal.RequireFromString(balance),
		Institution: "bank",
	}
}

func instantEdge(from, to string) dto.TransferRelationshipDTO {
	return dto.TransferRelationshipDTO{
		FromAccountID: from,
		ToAccountID:   to,
		Speed:         "INSTANT",
		IsAvailable:   true,
	}
}

func validPlanRequest() dto.PlanRoutesRequest {
	deadline := testutil.FixedNow.Add(48 * time.Hour)
	return dto.PlanRoutesRequest{
		Goal: dto.GoalDTO{
			TargetAccountID: "tgt",
			Amount:          decimal.NewFromInt(100),
			Deadline:        deadline,
		},
		Accounts: []dto.AccountDTO{
			accountDTO("src", "1000"),
			accountDTO("tgt", "0"),
		},
		TransferMatrix: []dto.TransferRelationshipDTO{instantEdge("src", "tgt")},
	}
}

func newPlanRoutes(repo *mockPlanRepository) *usecase.PlanRoutes {
	planner := service.NewPlanner(service.DefaultCombinationConfig(), service.NewPathCache())
	return usecase.NewPlanRoutes(planner, repo, clock.Fixed{Instant: testutil.FixedNow})
}

// --- Tests ---

func TestPlanRoutes_ComputedPlan(t *testing.T) {
	repo := &mockPlanRepository{}
	uc := newPlanRoutes(repo)

	resp, err := uc.Execute(context.Background(), validPlanRequest())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.PlanID)
	require.Len(t, resp.Routes, 3)
	assert.Equal(t, "cheapest", resp.Routes[0].Category)
	assert.Equal(t, "fastest", resp.Routes[1].Category)
	assert.Equal(t, "recommended", resp.Routes[2].Category)
	require.NotNil(t, resp.AllRoutesRisky)
	assert.False(t, *resp.AllRoutesRisky)
	assert.Empty(t, resp.Error)

	// The record was saved with its events pending.
	require.Len(t, repo.savedRecords, 1)
	saved := repo.savedRecords[0]
	assert.Equal(t, resp.PlanID, saved.ID())
	assert.True(t, saved.Status().IsComputed())
	assert.NotEmpty(t, saved.Events())
}

func TestPlanRoutes_RefusalBecomesFlatErrorResponse(t *testing.T) {
	repo := &mockPlanRepository{}
	uc := newPlanRoutes(repo)

	req := validPlanRequest()
	req.Goal.Deadline = testutil.FixedNow.Add(-time.Hour)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "past_deadline", resp.Error)
	assert.NotEmpty(t, resp.Message)
	assert.Empty(t, resp.Routes)
	assert.Nil(t, resp.AllRoutesRisky)

	require.Len(t, repo.savedRecords, 1)
	assert.Equal(t, "past_deadline", repo.savedRecords[0].Status().String())
}

func TestPlanRoutes_ShortfallSurvivesToTheResponse(t *testing.T) {
	repo := &mockPlanRepository{}
	uc := newPlanRoutes(repo)

	req := validPlanRequest()
	req.Accounts = []dto.AccountDTO{accountDTO("src", "40"), accountDTO("tgt", "0")}

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "insufficient_funds", resp.Error)
	require.NotNil(t, resp.Shortfall)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(60), *resp.Shortfall)
}

func TestPlanRoutes_ExplicitCurrentTimeOverridesClock(t *testing.T) {
	repo := &mockPlanRepository{}
	uc := newPlanRoutes(repo)

	req := validPlanRequest()
	// A request pinned after its own deadline must be refused even though
	// the service clock sits well before it.
	at := req.Goal.Deadline.Add(time.Minute)
	req.CurrentTime = &at

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "past_deadline", resp.Error)
}

func TestPlanRoutes_DecodeFailureIsValidationError(t *testing.T) {
	repo := &mockPlanRepository{}
	uc := newPlanRoutes(repo)

	req := validPlanRequest()
	req.TransferMatrix[0].Speed = "WARP"

	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	_, ok := model.AsValidationError(err)
	assert.True(t, ok)
	assert.Empty(t, repo.savedRecords)
}

func TestPlanRoutes_SaveFailurePropagates(t *testing.T) {
	repo := &mockPlanRepository{
		saveFunc: func(context.Context, model.PlanRecord) error {
			return errors.New("connection reset")
		},
	}
	uc := newPlanRoutes(repo)

	_, err := uc.Execute(context.Background(), validPlanRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save plan record")
}
