package service

import "github.com/cashroute/cashroute/internal/domain/model"

// SourceIdentifier filters a request's accounts down to the ones that can
// actually fund transfers.
type SourceIdentifier struct {
	balances *BalanceEvaluator
}

// NewSourceIdentifier creates a SourceIdentifier using the given evaluator.
func NewSourceIdentifier(balances *BalanceEvaluator) *SourceIdentifier {
	return &SourceIdentifier{balances: balances}
}

// Identify returns the accounts with positive available balance, in input
// order, paired with their available balances. The entries reference the
// caller's accounts rather than copies.
func (s *SourceIdentifier) Identify(accounts []model.Account) []model.FundedAccount {
	var funded []model.FundedAccount
	for i := range accounts {
		available := s.balances.Available(accounts[i])
		if available.IsPositive() {
			funded = append(funded, model.FundedAccount{Account: &accounts[i], Available: available})
		}
	}
	return funded
}
