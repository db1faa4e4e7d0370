package model

import (
	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// TransferRelationship is one directed edge of the transfer matrix: money can
// move from FromID to ToID at the given speed. A nil fee means the hop is
// free. Unavailable relationships are invisible to path discovery.
// Two relationships are duplicates when (from, to, speed) all match.
type TransferRelationship struct {
	FromID    string
	ToID      string
	Speed     valueobject.TransferSpeed
	Fee       *decimal.Decimal
	Available bool
}

// FeeOrZero returns the fixed fee for this hop, normalizing an absent fee to zero.
func (r TransferRelationship) FeeOrZero() decimal.Decimal {
	if r.Fee == nil {
		return decimal.Zero
	}
	return *r.Fee
}
