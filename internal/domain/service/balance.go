package service

import (
	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/model"
)

// BalanceEvaluator computes an account's spendable balance: the ledger
// balance net of pending debits. Pending credits and settled transactions
// never move it.
type BalanceEvaluator struct{}

// NewBalanceEvaluator creates a new BalanceEvaluator.
func NewBalanceEvaluator() *BalanceEvaluator {
	return &BalanceEvaluator{}
}

// Available returns balance plus the sum of pending debit amounts. Debits are
// negative, so the sum subtracts what is already spoken for.
func (e *BalanceEvaluator) Available(account model.Account) decimal.Decimal {
	available := account.Balance
	for _, tx := range account.Pending {
		if tx.Status.IsPending() && tx.Amount.IsNegative() {
			available = available.Add(tx.Amount)
		}
	}
	return available
}
