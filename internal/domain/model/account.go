package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// Transaction is a ledger entry attached to an account. Negative amounts are
// debits. Only pending debits reduce the spendable balance.
type Transaction struct {
	ID        string
	AccountID string
	Amount    decimal.Decimal
	Date      time.Time
	Status    valueobject.TransactionStatus
}

// Account describes one account in a routing request. Accounts are request
// documents, not persisted entities: every plan invocation carries its own
// set and ids only need to be unique within that set.
type Account struct {
	ID           string
	Name         string
	Type         valueobject.AccountType
	Balance      decimal.Decimal
	Pending      []Transaction
	Institution  valueobject.InstitutionKind
	LastActivity time.Time
}
