package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()
	ve, ok := model.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Equal(t, field, ve.Field)
}

func TestStructuralValidator_AcceptsWellFormedRequest(t *testing.T) {
	validator := service.NewStructuralValidator()

	src := checking("src", "500")
	src.Pending = []model.Transaction{pendingTx("src", "-50")}
	tgt := checking("tgt", "0")
	matrix := []model.TransferRelationship{
		relWithFee("src", "tgt", valueobject.SpeedInstant, "1.50"),
		rel("src", "tgt", valueobject.SpeedThreeDay),
	}

	err := validator.Validate(goalOf("tgt", "100", mondayMorning), []model.Account{src, tgt}, matrix)

	assert.NoError(t, err)
}

func TestStructuralValidator_RejectsEmptyAccountList(t *testing.T) {
	validator := service.NewStructuralValidator()

	err := validator.Validate(goalOf("tgt", "100", mondayMorning), nil, nil)

	requireValidationError(t, err, "accounts")
}

func TestStructuralValidator_RejectsDuplicateAccountIDs(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")
	dup := checking("a", "200")

	err := validator.Validate(goalOf("a", "50", mondayMorning), []model.Account{a, dup}, nil)

	requireValidationError(t, err, "accounts[1].id")
}

func TestStructuralValidator_RejectsMissingAccountType(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")
	a.Type = valueobject.AccountType{}

	err := validator.Validate(goalOf("a", "50", mondayMorning), []model.Account{a}, nil)

	requireValidationError(t, err, "accounts[0].type")
}

func TestStructuralValidator_RejectsPendingTransactionOwnerMismatch(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")
	a.Pending = []model.Transaction{pendingTx("someone-else", "-10")}

	err := validator.Validate(goalOf("a", "50", mondayMorning), []model.Account{a}, nil)

	requireValidationError(t, err, "accounts[0].pending[0].accountId")
}

func TestStructuralValidator_RejectsNonPositiveGoalAmount(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")

	err := validator.Validate(goalOf("a", "0", mondayMorning), []model.Account{a}, nil)

	requireValidationError(t, err, "goal.amount")
}

func TestStructuralValidator_RejectsUnknownTarget(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")

	err := validator.Validate(goalOf("ghost", "50", mondayMorning), []model.Account{a}, nil)

	requireValidationError(t, err, "goal.targetAccountId")
}

func TestStructuralValidator_RejectsMatrixEndpointOutsideAccountList(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")
	matrix := []model.TransferRelationship{rel("a", "ghost", valueobject.SpeedInstant)}

	err := validator.Validate(goalOf("a", "50", mondayMorning), []model.Account{a}, matrix)

	requireValidationError(t, err, "transferMatrix[0].toAccountId")
}

func TestStructuralValidator_RejectsNegativeFee(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")
	b := checking("b", "0")
	matrix := []model.TransferRelationship{relWithFee("a", "b", valueobject.SpeedInstant, "-1")}

	err := validator.Validate(goalOf("b", "50", mondayMorning), []model.Account{a, b}, matrix)

	requireValidationError(t, err, "transferMatrix[0].fee")
}

func TestStructuralValidator_RejectsDuplicateEdge(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")
	b := checking("b", "0")
	matrix := []model.TransferRelationship{
		rel("a", "b", valueobject.SpeedInstant),
		rel("a", "b", valueobject.SpeedInstant),
	}

	err := validator.Validate(goalOf("b", "50", mondayMorning), []model.Account{a, b}, matrix)

	requireValidationError(t, err, "transferMatrix[1]")
}

func TestStructuralValidator_AllowsSameEdgeAtDifferentSpeeds(t *testing.T) {
	validator := service.NewStructuralValidator()

	a := checking("a", "100")
	b := checking("b", "0")
	matrix := []model.TransferRelationship{
		rel("a", "b", valueobject.SpeedInstant),
		rel("a", "b", valueobject.SpeedOneDay),
	}

	err := validator.Validate(goalOf("b", "50", mondayMorning), []model.Account{a, b}, matrix)

	assert.NoError(t, err)
}
