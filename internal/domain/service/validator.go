package service

import (
	"fmt"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// StructuralValidator rejects malformed requests before the pipeline runs.
// Its failures are caller faults (*model.ValidationError), never business
// outcomes: a request that fails here was never a plannable question.
type StructuralValidator struct{}

// NewStructuralValidator creates a new StructuralValidator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

type relationshipKey struct {
	from  string
	to    string
	speed valueobject.TransferSpeed
}

// Validate checks the request's shape: a non-empty account list with unique
// ids and valid enums, well-formed pending transactions, matrix endpoints
// that reference known accounts with no duplicate (from, to, speed) edges,
// a positive goal amount, and a target that exists.
func (v *StructuralValidator) Validate(goal model.Goal, accounts []model.Account, matrix []model.TransferRelationship) error {
	if len(accounts) == 0 {
		return model.NewValidationError("accounts", "account list must not be empty")
	}

	ids := make(map[string]bool, len(accounts))
	for i, acct := range accounts {
		field := fmt.Sprintf("accounts[%d]", i)
		if acct.ID == "" {
			return model.NewValidationError(field+".id", "account id must not be empty")
		}
		if ids[acct.ID] {
			return model.NewValidationError(field+".id", "duplicate account id %q", acct.ID)
		}
		ids[acct.ID] = true

		if acct.Type.IsZero() {
			return model.NewValidationError(field+".type", "account type is required")
		}
		if acct.Institution.IsZero() {
			return model.NewValidationError(field+".institution", "institution kind is required")
		}

		for j, tx := range acct.Pending {
			txField := fmt.Sprintf("%s.pending[%d]", field, j)
			if tx.Status.IsZero() {
				return model.NewValidationError(txField+".status", "transaction status is required")
			}
			if tx.AccountID != acct.ID {
				return model.NewValidationError(txField+".accountId", "transaction owner %q does not match account %q", tx.AccountID, acct.ID)
			}
		}
	}

	if !goal.Amount.IsPositive() {
		return model.NewValidationError("goal.amount", "goal amount must be positive, got %s", goal.Amount.String())
	}
	if goal.TargetAccountID == "" {
		return model.NewValidationError("goal.targetAccountId", "target account id must not be empty")
	}
	if !ids[goal.TargetAccountID] {
		return model.NewValidationError("goal.targetAccountId", "target account %q is not in the account list", goal.TargetAccountID)
	}

	seen := make(map[relationshipKey]bool, len(matrix))
	for i, rel := range matrix {
		field := fmt.Sprintf("transferMatrix[%d]", i)
		if rel.Speed.IsZero() {
			return model.NewValidationError(field+".speed", "transfer speed is required")
		}
		if !ids[rel.FromID] {
			return model.NewValidationError(field+".fromAccountId", "unknown account %q", rel.FromID)
		}
		if !ids[rel.ToID] {
			return model.NewValidationError(field+".toAccountId", "unknown account %q", rel.ToID)
		}
		if rel.Fee != nil && rel.Fee.IsNegative() {
			return model.NewValidationError(field+".fee", "fee must not be negative, got %s", rel.Fee.String())
		}

		key := relationshipKey{from: rel.FromID, to: rel.ToID, speed: rel.Speed}
		if seen[key] {
			return model.NewValidationError(field, "duplicate relationship %s->%s at speed %s", rel.FromID, rel.ToID, rel.Speed.String())
		}
		seen[key] = true
	}

	return nil
}
