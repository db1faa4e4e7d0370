package model

import "github.com/shopspring/decimal"

// FundedAccount pairs an account reference with its available balance,
// computed once so downstream stages never re-derive it.
type FundedAccount struct {
	Account   *Account
	Available decimal.Decimal
}

// AccountCombination is a candidate subset of source accounts whose pooled
// available balance covers the goal amount.
type AccountCombination struct {
	Members        []FundedAccount
	TotalAvailable decimal.Decimal
}
