package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/pkg/money"
)

// RouteBuilder turns an account combination into a concrete route: a
// proportional allocation per member, a transfer step per path hop, and
// fee/arrival totals.
type RouteBuilder struct {
	estimator *ArrivalEstimator
}

// NewRouteBuilder creates a RouteBuilder using the given estimator.
func NewRouteBuilder(estimator *ArrivalEstimator) *RouteBuilder {
	return &RouteBuilder{estimator: estimator}
}

// Build allocates the goal across the combination and walks each member's
// path hop by hop. Every hop carries the member's full allocation; a
// multi-hop transfer is never split. Hop arrivals chain: each hop initiates
// at the previous hop's arrival, the first at now. A member without a
// discovered path is a broken precondition and fails the build.
func (b *RouteBuilder) Build(
	combo model.AccountCombination,
	goal decimal.Decimal,
	paths map[string][]model.TransferRelationship,
	now time.Time,
) (model.Route, error) {
	allocations := allocate(combo, goal)

	var steps []model.TransferStep
	totalFee := decimal.Zero
	var arrival time.Time

	for i, member := range combo.Members {
		path := paths[member.Account.ID]
		if len(path) == 0 {
			return model.Route{}, fmt.Errorf("account %s reached the builder without a path to the target", member.Account.ID)
		}

		initiation := now
		for _, rel := range path {
			stepArrival, err := b.estimator.EstimateArrival(rel.Speed, initiation)
			if err != nil {
				return model.Route{}, fmt.Errorf("estimate arrival %s->%s: %w", rel.FromID, rel.ToID, err)
			}

			fee := rel.FeeOrZero()
			steps = append(steps, model.TransferStep{
				FromID:  rel.FromID,
				ToID:    rel.ToID,
				Amount:  allocations[i],
				Speed:   rel.Speed,
				Fee:     fee,
				Arrival: stepArrival,
			})

			totalFee = totalFee.Add(fee)
			if stepArrival.After(arrival) {
				arrival = stepArrival
			}
			initiation = stepArrival
		}
	}

	return model.Route{Steps: steps, TotalFee: totalFee, Arrival: arrival}, nil
}

// allocate splits the goal across the combination proportionally to each
// member's share of the pooled balance. Every member but the last gets its
// proportional share floored to whole cents, capped by its own balance and
// by what is still unallocated; the last member picks up the remainder,
// bounded by its own balance. Allocations never go negative, even when
// flooring has consumed the goal early.
func allocate(combo model.AccountCombination, goal decimal.Decimal) []decimal.Decimal {
	allocations := make([]decimal.Decimal, len(combo.Members))
	remaining := goal

	for i, member := range combo.Members {
		if i == len(combo.Members)-1 {
			last := money.Min(remaining, member.Available)
			if last.IsNegative() {
				last = decimal.Zero
			}
			allocations[i] = last
			break
		}

		share := goal.Mul(member.Available).Div(combo.TotalAvailable)
		alloc := decimal.Min(money.FloorCents(share), member.Available, remaining)
		allocations[i] = alloc
		remaining = remaining.Sub(alloc)
	}

	return allocations
}
