package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/application/usecase"
	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/port"
	"github.com/cashroute/cashroute/pkg/auth"
	"github.com/cashroute/cashroute/pkg/money"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if claims.HasAnyRole(roles...) {
		return nil
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that RoutingHandler implements RoutingServiceServer.
var _ RoutingServiceServer = (*RoutingHandler)(nil)

// RoutingHandler implements the gRPC RoutingService server.
type RoutingHandler struct {
	UnimplementedRoutingServiceServer
	planRoutes *usecase.PlanRoutes
	getPlan    *usecase.GetPlan
	listPlans  *usecase.ListPlans

	logger *slog.Logger
}

func NewRoutingHandler(
	planRoutes *usecase.PlanRoutes,
	getPlan *usecase.GetPlan,
	listPlans *usecase.ListPlans,
	logger *slog.Logger,
) *RoutingHandler {
	return &RoutingHandler{
		planRoutes: planRoutes,
		getPlan:    getPlan,
		listPlans:  listPlans,
		logger:     logger,
	}
}

func (h *RoutingHandler) PlanRoutes(ctx context.Context, req *PlanRoutesRequestMsg) (*PlanRoutesResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RolePlanner, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	planReq, err := decodePlanRoutesMsg(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := h.planRoutes.Execute(ctx, planReq)
	if err != nil {
		if _, ok := model.AsValidationError(err); ok {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		h.logger.Error("plan routes failed", "error", err)
		return nil, status.Error(codes.Internal, "failed to compute route plan")
	}

	return encodePlanRoutesMsg(resp), nil
}

func (h *RoutingHandler) GetPlan(ctx context.Context, req *GetPlanRequestMsg) (*GetPlanResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RolePlanner, auth.RoleReadOnly, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid plan id: %v", err)
	}

	resp, err := h.getPlan.Execute(ctx, dto.GetPlanRequest{PlanID: planID})
	if err != nil {
		if errors.Is(err, port.ErrPlanNotFound) {
			return nil, status.Errorf(codes.NotFound, "plan %s not found", planID)
		}
		h.logger.Error("get plan failed", "plan_id", planID, "error", err)
		return nil, status.Error(codes.Internal, "failed to load plan")
	}

	msg := encodePlanRecordMsg(resp)
	return &GetPlanResponseMsg{Plan: &msg}, nil
}

func (h *RoutingHandler) ListPlans(ctx context.Context, req *ListPlansRequestMsg) (*ListPlansResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RolePlanner, auth.RoleReadOnly, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	resp, err := h.listPlans.Execute(ctx, dto.ListPlansRequest{
		PageSize: int(req.PageSize),
		Offset:   int(req.Offset),
	})
	if err != nil {
		h.logger.Error("list plans failed", "error", err)
		return nil, status.Error(codes.Internal, "failed to list plans")
	}

	plans := make([]PlanRecordMsg, 0, len(resp.Plans))
	for _, p := range resp.Plans {
		plans = append(plans, encodePlanRecordMsg(p))
	}
	return &ListPlansResponseMsg{Plans: plans, TotalCount: int32(resp.TotalCount)}, nil
}

// Temporary gRPC message types until proto generation is wired. Amounts
// travel as decimal strings, instants as RFC 3339.

type GoalMsg struct {
	TargetAccountID string `json:"target_account_id"`
	Amount          string `json:"amount"`
	Deadline        string `json:"deadline"`
}

type TransactionMsg struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

type AccountMsg struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Type                string           `json:"type"`
	Balance             string           `json:"balance"`
	PendingTransactions []TransactionMsg `json:"pending_transactions,omitempty"`
	Institution         string           `json:"institution"`
	LastActivity        string           `json:"last_activity,omitempty"`
}

type TransferRelationshipMsg struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Speed         string `json:"speed"`
	Fee           string `json:"fee,omitempty"`
	IsAvailable   bool   `json:"is_available"`
}

type PlanRoutesRequestMsg struct {
	Goal           *GoalMsg                  `json:"goal"`
	Accounts       []AccountMsg              `json:"accounts"`
	TransferMatrix []TransferRelationshipMsg `json:"transfer_matrix"`
	CurrentTime    string                    `json:"current_time,omitempty"`
}

type TransferStepMsg struct {
	FromAccountID    string `json:"from_account_id"`
	ToAccountID      string `json:"to_account_id"`
	Amount           string `json:"amount"`
	Speed            string `json:"speed"`
	Fee              string `json:"fee"`
	EstimatedArrival string `json:"estimated_arrival"`
}

type RouteMsg struct {
	Category         string            `json:"category"`
	Steps            []TransferStepMsg `json:"steps"`
	TotalFee         string            `json:"total_fee"`
	EstimatedArrival string            `json:"estimated_arrival"`
	RiskLevel        string            `json:"risk_level"`
	RiskScore        float64           `json:"risk_score"`
	Reasoning        string            `json:"reasoning"`
}

type PlanRoutesResponseMsg struct {
	PlanID         string     `json:"plan_id"`
	Routes         []RouteMsg `json:"routes,omitempty"`
	AllRoutesRisky bool       `json:"all_routes_risky,omitempty"`
	Error          string     `json:"error,omitempty"`
	Message        string     `json:"message,omitempty"`
	Shortfall      string     `json:"shortfall,omitempty"`
	Suggestion     string     `json:"suggestion,omitempty"`
}

type GetPlanRequestMsg struct {
	PlanID string `json:"plan_id"`
}

type PlanRecordMsg struct {
	ID              string     `json:"id"`
	TargetAccountID string     `json:"target_account_id"`
	Amount          string     `json:"amount"`
	Deadline        string     `json:"deadline"`
	RequestedAt     string     `json:"requested_at"`
	Status          string     `json:"status"`
	Routes          []RouteMsg `json:"routes,omitempty"`
	AllRoutesRisky  bool       `json:"all_routes_risky,omitempty"`
	Error           string     `json:"error,omitempty"`
	Message         string     `json:"message,omitempty"`
	Shortfall       string     `json:"shortfall,omitempty"`
	Suggestion      string     `json:"suggestion,omitempty"`
	CreatedAt       string     `json:"created_at"`
}

type GetPlanResponseMsg struct {
	Plan *PlanRecordMsg `json:"plan"`
}

type ListPlansRequestMsg struct {
	PageSize int32 `json:"page_size"`
	Offset   int32 `json:"offset"`
}

type ListPlansResponseMsg struct {
	Plans      []PlanRecordMsg `json:"plans"`
	TotalCount int32           `json:"total_count"`
}

// --- message <-> DTO conversion ---

func decodePlanRoutesMsg(msg *PlanRoutesRequestMsg) (dto.PlanRoutesRequest, error) {
	if msg.Goal == nil {
		return dto.PlanRoutesRequest{}, errors.New("goal is required")
	}

	amount, err := money.Parse(msg.Goal.Amount)
	if err != nil {
		return dto.PlanRoutesRequest{}, err
	}
	deadline, err := parseInstant("goal.deadline", msg.Goal.Deadline)
	if err != nil {
		return dto.PlanRoutesRequest{}, err
	}

	req := dto.PlanRoutesRequest{
		Goal: dto.GoalDTO{
			TargetAccountID: msg.Goal.TargetAccountID,
			Amount:          amount,
			Deadline:        deadline,
		},
	}

	if msg.CurrentTime != "" {
		now, err := parseInstant("current_time", msg.CurrentTime)
		if err != nil {
			return dto.PlanRoutesRequest{}, err
		}
		req.CurrentTime = &now
	}

	for _, a := range msg.Accounts {
		acct, err := decodeAccountMsg(a)
		if err != nil {
			return dto.PlanRoutesRequest{}, err
		}
		req.Accounts = append(req.Accounts, acct)
	}

	for _, r := range msg.TransferMatrix {
		rel := dto.TransferRelationshipDTO{
			FromAccountID: r.FromAccountID,
			ToAccountID:   r.ToAccountID,
			Speed:         r.Speed,
			IsAvailable:   r.IsAvailable,
		}
		if r.Fee != "" {
			fee, err := money.Parse(r.Fee)
			if err != nil {
				return dto.PlanRoutesRequest{}, err
			}
			rel.Fee = &fee
		}
		req.TransferMatrix = append(req.TransferMatrix, rel)
	}

	return req, nil
}

func decodeAccountMsg(msg AccountMsg) (dto.AccountDTO, error) {
	balance, err := money.Parse(msg.Balance)
	if err != nil {
		return dto.AccountDTO{}, err
	}

	acct := dto.AccountDTO{
		ID:          msg.ID,
		Name:        msg.Name,
		Type:        msg.Type,
		Balance:     balance,
		Institution: msg.Institution,
	}

	if msg.LastActivity != "" {
		last, err := parseInstant("last_activity", msg.LastActivity)
		if err != nil {
			return dto.AccountDTO{}, err
		}
		acct.LastActivity = &last
	}

	for _, tx := range msg.PendingTransactions {
		amount, err := money.Parse(tx.Amount)
		if err != nil {
			return dto.AccountDTO{}, err
		}
		date, err := parseInstant("pending.date", tx.Date)
		if err != nil {
			return dto.AccountDTO{}, err
		}
		acct.PendingTransactions = append(acct.PendingTransactions, dto.TransactionDTO{
			ID:        tx.ID,
			AccountID: tx.AccountID,
			Amount:    amount,
			Date:      date,
			Status:    tx.Status,
		})
	}

	return acct, nil
}

func encodePlanRoutesMsg(resp dto.PlanRoutesResponse) *PlanRoutesResponseMsg {
	msg := &PlanRoutesResponseMsg{
		PlanID:     resp.PlanID.String(),
		Routes:     encodeRouteMsgs(resp.Routes),
		Error:      resp.Error,
		Message:    resp.Message,
		Suggestion: resp.Suggestion,
	}
	if resp.AllRoutesRisky != nil {
		msg.AllRoutesRisky = *resp.AllRoutesRisky
	}
	if resp.Shortfall != nil {
		msg.Shortfall = resp.Shortfall.String()
	}
	return msg
}

func encodePlanRecordMsg(p dto.PlanRecordResponse) PlanRecordMsg {
	msg := PlanRecordMsg{
		ID:              p.ID.String(),
		TargetAccountID: p.TargetAccountID,
		Amount:          p.Amount.String(),
		Deadline:        p.Deadline.Format(time.RFC3339),
		RequestedAt:     p.RequestedAt.Format(time.RFC3339),
		Status:          p.Status,
		Routes:          encodeRouteMsgs(p.Routes),
		Error:           p.Error,
		Message:         p.Message,
		Suggestion:      p.Suggestion,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
	if p.AllRoutesRisky != nil {
		msg.AllRoutesRisky = *p.AllRoutesRisky
	}
	if p.Shortfall != nil {
		msg.Shortfall = p.Shortfall.String()
	}
	return msg
}

func encodeRouteMsgs(routes []dto.RouteDTO) []RouteMsg {
	if len(routes) == 0 {
		return nil
	}
	out := make([]RouteMsg, 0, len(routes))
	for _, r := range routes {
		steps := make([]TransferStepMsg, 0, len(r.Steps))
		for _, s := range r.Steps {
			steps = append(steps, TransferStepMsg{
				FromAccountID:    s.FromAccountID,
				ToAccountID:      s.ToAccountID,
				Amount:           s.Amount.String(),
				Speed:            s.Speed,
				Fee:              s.Fee.String(),
				EstimatedArrival: s.EstimatedArrival.Format(time.RFC3339),
			})
		}
		out = append(out, RouteMsg{
			Category:         r.Category,
			Steps:            steps,
			TotalFee:         r.TotalFee.String(),
			EstimatedArrival: r.EstimatedArrival.Format(time.RFC3339),
			RiskLevel:        r.RiskLevel,
			RiskScore:        r.RiskScore,
			Reasoning:        r.Reasoning,
		})
	}
	return out
}

func parseInstant(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.New(field + " must be RFC 3339, got " + value)
	}
	return t, nil
}
