package service_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// mondayMorning is Monday 2025-03-10 at 10:00 in the fixed UTC-5 settlement
// frame, expressed as the equivalent UTC instant. Most pipeline tests anchor
// on it so cutoff and weekend arithmetic stays easy to verify by hand.
var mondayMorning = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

// march returns an instant in March 2025, UTC.
func march(day, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func feeOf(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func checking(id, balance string) model.Account {
	return model.Account{
		ID:          id,
		Name:        id,
		Type:        valueobject.AccountChecking,
		Balance:     dec(balance),
		Institution: valueobject.InstitutionBank,
	}
}

func pendingTx(accountID, amount string) model.Transaction {
	return model.Transaction{
		ID:        accountID + "-pending",
		AccountID: accountID,
		Amount:    dec(amount),
		Date:      march(9, 12, 0),
		Status:    valueobject.StatusPending,
	}
}

func rel(from, to string, speed valueobject.TransferSpeed) model.TransferRelationship {
	return model.TransferRelationship{FromID: from, ToID: to, Speed: speed, Available: true}
}

func relWithFee(from, to string, speed valueobject.TransferSpeed, fee string) model.TransferRelationship {
	r := rel(from, to, speed)
	r.Fee = feeOf(fee)
	return r
}

func unavailable(r model.TransferRelationship) model.TransferRelationship {
	r.Available = false
	return r
}

func goalOf(target, amount string, deadline time.Time) model.Goal {
	return model.Goal{TargetAccountID: target, Amount: dec(amount), Deadline: deadline}
}

func fundedOf(accounts ...*model.Account) []model.FundedAccount {
	funded := make([]model.FundedAccount, 0, len(accounts))
	for _, acct := range accounts {
		funded = append(funded, model.FundedAccount{Account: acct, Available: acct.Balance})
	}
	return funded
}
