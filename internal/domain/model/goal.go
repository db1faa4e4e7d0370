package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is what a routing request asks for: land Amount in the target account
// before Deadline.
type Goal struct {
	TargetAccountID string
	Amount          decimal.Decimal
	Deadline        time.Time
}
