package usecase

import (
	"strconv"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// DecodePlanInput converts a plan request's wire shapes into domain types.
// Decode failures are caller faults and come back as *model.ValidationError,
// the same taxonomy the structural validator uses. Exported because the
// offline CLI feeds scenario files through the same conversion.
func DecodePlanInput(req dto.PlanRoutesRequest) (model.Goal, []model.Account, []model.TransferRelationship, error) {
	goal := model.Goal{
		TargetAccountID: req.Goal.TargetAccountID,
		Amount:          req.Goal.Amount,
		Deadline:        req.Goal.Deadline,
	}

	accounts := make([]model.Account, 0, len(req.Accounts))
	for i, a := range req.Accounts {
		acct, err := decodeAccount(i, a)
		if err != nil {
			return model.Goal{}, nil, nil, err
		}
		accounts = append(accounts, acct)
	}

	matrix := make([]model.TransferRelationship, 0, len(req.TransferMatrix))
	for i, r := range req.TransferMatrix {
		rel, err := decodeRelationship(i, r)
		if err != nil {
			return model.Goal{}, nil, nil, err
		}
		matrix = append(matrix, rel)
	}

	return goal, accounts, matrix, nil
}

func decodeAccount(i int, a dto.AccountDTO) (model.Account, error) {
	field := func(name string) string { return "accounts[" + strconv.Itoa(i) + "]." + name }

	acctType, err := valueobject.NewAccountType(a.Type)
	if err != nil {
		return model.Account{}, model.NewValidationError(field("type"), "%v", err)
	}
	institution, err := valueobject.NewInstitutionKind(a.Institution)
	if err != nil {
		return model.Account{}, model.NewValidationError(field("institution"), "%v", err)
	}

	acct := model.Account{
		ID:          a.ID,
		Name:        a.Name,
		Type:        acctType,
		Balance:     a.Balance,
		Institution: institution,
	}
	if a.LastActivity != nil {
		acct.LastActivity = *a.LastActivity
	}

	for j, tx := range a.PendingTransactions {
		status, err := valueobject.NewTransactionStatus(tx.Status)
		if err != nil {
			return model.Account{}, model.NewValidationError(
				field("pendingTransactions["+strconv.Itoa(j)+"].status"), "%v", err)
		}
		acct.Pending = append(acct.Pending, model.Transaction{
			ID:        tx.ID,
			AccountID: tx.AccountID,
			Amount:    tx.Amount,
			Date:      tx.Date,
			Status:    status,
		})
	}

	return acct, nil
}

func decodeRelationship(i int, r dto.TransferRelationshipDTO) (model.TransferRelationship, error) {
	speed, err := valueobject.NewTransferSpeed(r.Speed)
	if err != nil {
		return model.TransferRelationship{}, model.NewValidationError(
			"transferMatrix["+strconv.Itoa(i)+"].speed", "%v", err)
	}
	return model.TransferRelationship{
		FromID:    r.FromAccountID,
		ToID:      r.ToAccountID,
		Speed:     speed,
		Fee:       r.Fee,
		Available: r.IsAvailable,
	}, nil
}

// EncodeRoutes converts selected routes into their wire shape. Exported for
// the CLI's table and JSON output.
func EncodeRoutes(routes []model.Route) []dto.RouteDTO {
	out := make([]dto.RouteDTO, 0, len(routes))
	for _, r := range routes {
		out = append(out, encodeRoute(r))
	}
	return out
}

func encodeRoute(r model.Route) dto.RouteDTO {
	steps := make([]dto.TransferStepDTO, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, dto.TransferStepDTO{
			FromAccountID:    s.FromID,
			ToAccountID:      s.ToID,
			Amount:           s.Amount,
			Speed:            s.Speed.String(),
			Fee:              s.Fee,
			EstimatedArrival: s.Arrival,
		})
	}
	return dto.RouteDTO{
		Category:         r.Category.String(),
		Steps:            steps,
		TotalFee:         r.TotalFee,
		EstimatedArrival: r.Arrival,
		RiskLevel:        r.RiskLevel.String(),
		RiskScore:        r.RiskScore,
		Reasoning:        r.Reasoning,
	}
}

func encodePlanRecord(rec model.PlanRecord) dto.PlanRecordResponse {
	resp := dto.PlanRecordResponse{
		ID:              rec.ID(),
		TargetAccountID: rec.TargetAccountID(),
		Amount:          rec.Amount(),
		Deadline:        rec.Deadline(),
		RequestedAt:     rec.RequestedAt(),
		Status:          rec.Status().String(),
		CreatedAt:       rec.CreatedAt(),
	}
	if rec.Status().IsComputed() {
		resp.Routes = EncodeRoutes(rec.Routes())
		risky := rec.AllRoutesRisky()
		resp.AllRoutesRisky = &risky
	} else {
		resp.Error = rec.Status().String()
		resp.Message = rec.ErrorMessage()
		resp.Shortfall = rec.Shortfall()
		resp.Suggestion = rec.Suggestion()
	}
	return resp
}
