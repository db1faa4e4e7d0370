package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire field names are camelCase to match the routing contract: a response
// either carries `routes` (+ `allRoutesRisky`) or the flat `error` fields,
// never both.

// TransactionDTO is one pending ledger entry on a request account.
type TransactionDTO struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Status    string          `json:"status"`
}

// AccountDTO is one account in a routing request.
type AccountDTO struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Type                string           `json:"type"`
	Balance             decimal.Decimal  `json:"balance"`
	PendingTransactions []TransactionDTO `json:"pendingTransactions,omitempty"`
	Institution         string           `json:"institution"`
	LastActivity        *time.Time       `json:"lastActivity,omitempty"`
}

// TransferRelationshipDTO is one directed edge of the transfer matrix.
type TransferRelationshipDTO struct {
	FromAccountID string           `json:"fromAccountId"`
	ToAccountID   string           `json:"toAccountId"`
	Speed         string           `json:"speed"`
	Fee           *decimal.Decimal `json:"fee,omitempty"`
	IsAvailable   bool             `json:"isAvailable"`
}

// GoalDTO names the target, the amount to land there, and the deadline.
type GoalDTO struct {
	TargetAccountID string          `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Deadline        time.Time       `json:"deadline"`
}

// PlanRoutesRequest is the input DTO for computing a route plan.
// CurrentTime is optional; when absent the service clock supplies now.
type PlanRoutesRequest struct {
	Goal           GoalDTO                   `json:"goal"`
	Accounts       []AccountDTO              `json:"accounts"`
	TransferMatrix []TransferRelationshipDTO `json:"transferMatrix"`
	CurrentTime    *time.Time                `json:"currentTime,omitempty"`
}

// TransferStepDTO is one hop of a selected route.
type TransferStepDTO struct {
	FromAccountID    string          `json:"fromAccountId"`
	ToAccountID      string          `json:"toAccountId"`
	Amount           decimal.Decimal `json:"amount"`
	Speed            string          `json:"speed"`
	Fee              decimal.Decimal `json:"fee"`
	EstimatedArrival time.Time       `json:"estimatedArrival"`
}

// RouteDTO is one selected route with its aggregate metadata.
type RouteDTO struct {
	Category         string            `json:"category"`
	Steps            []TransferStepDTO `json:"steps"`
	TotalFee         decimal.Decimal   `json:"totalFee"`
	EstimatedArrival time.Time         `json:"estimatedArrival"`
	RiskLevel        string            `json:"riskLevel"`
	RiskScore        float64           `json:"riskScore"`
	Reasoning        string            `json:"reasoning"`
}

// PlanRoutesResponse is the outcome of a plan request. A computed plan
// carries Routes and AllRoutesRisky; a refused one carries only the error
// fields.
type PlanRoutesResponse struct {
	PlanID         uuid.UUID        `json:"planId"`
	Routes         []RouteDTO       `json:"routes,omitempty"`
	AllRoutesRisky *bool            `json:"allRoutesRisky,omitempty"`
	Error          string           `json:"error,omitempty"`
	Message        string           `json:"message,omitempty"`
	Shortfall      *decimal.Decimal `json:"shortfall,omitempty"`
	Suggestion     string           `json:"suggestion,omitempty"`
}

// GetPlanRequest is the input DTO for retrieving one stored plan.
type GetPlanRequest struct {
	PlanID uuid.UUID `json:"planId"`
}

// PlanRecordResponse is the output DTO for a stored plan.
type PlanRecordResponse struct {
	ID              uuid.UUID        `json:"id"`
	TargetAccountID string           `json:"targetAccountId"`
	Amount          decimal.Decimal  `json:"amount"`
	Deadline        time.Time        `json:"deadline"`
	RequestedAt     time.Time        `json:"requestedAt"`
	Status          string           `json:"status"`
	Routes          []RouteDTO       `json:"routes,omitempty"`
	AllRoutesRisky  *bool            `json:"allRoutesRisky,omitempty"`
	Error           string           `json:"error,omitempty"`
	Message         string           `json:"message,omitempty"`
	Shortfall       *decimal.Decimal `json:"shortfall,omitempty"`
	Suggestion      string           `json:"suggestion,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ListPlansRequest is the input DTO for listing stored plans.
type ListPlansRequest struct {
	PageSize int `json:"pageSize"`
	Offset   int `json:"offset"`
}

// ListPlansResponse is the output DTO for listing stored plans.
type ListPlansResponse struct {
	Plans      []PlanRecordResponse `json:"plans"`
	TotalCount int                  `json:"totalCount"`
}
