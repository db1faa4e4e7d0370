package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
	"github.com/cashroute/cashroute/pkg/money"
)

// RouteSelector picks the cheapest, fastest, and recommended routes out of
// the scored candidates and explains each pick.
type RouteSelector struct{}

// NewRouteSelector creates a new RouteSelector.
func NewRouteSelector() *RouteSelector {
	return &RouteSelector{}
}

// Select returns the three picks in cheapest, fastest, recommended order.
// Ties resolve to the first candidate in enumeration order. The returned
// routes are copies; mutating one never reaches the candidate set or another
// selection. An empty candidate set selects nothing.
func (s *RouteSelector) Select(candidates []model.Route, now time.Time) []model.Route {
	if len(candidates) == 0 {
		return nil
	}

	cheapest := candidates[0]
	for _, c := range candidates[1:] {
		if c.TotalFee.LessThan(cheapest.TotalFee) {
			cheapest = c
		}
	}

	fastest := candidates[0]
	for _, c := range candidates[1:] {
		if c.Arrival.Before(fastest.Arrival) {
			fastest = c
		}
	}

	recommended, bestScore := s.recommend(candidates, now)

	cheapestPick := cheapest.Clone()
	cheapestPick.Category = valueobject.CategoryCheapest
	cheapestPick.Reasoning = fmt.Sprintf("lowest total fee at %s", money.FormatUSD(cheapest.TotalFee))

	fastestPick := fastest.Clone()
	fastestPick.Category = valueobject.CategoryFastest
	fastestPick.Reasoning = fmt.Sprintf("earliest arrival, landing %s", fastest.Arrival.Format(time.RFC3339))

	recommendedPick := recommended.Clone()
	recommendedPick.Category = valueobject.CategoryRecommended
	recommendedPick.Reasoning = fmt.Sprintf(
		"best balance of cost, speed, and risk: %s in fees, %s risk, desirability %.1f of 100",
		money.FormatUSD(recommended.TotalFee), recommended.RiskLevel.String(), bestScore,
	)

	return []model.Route{cheapestPick, fastestPick, recommendedPick}
}

// AllRisky reports whether every selected route scores strictly above 70. An
// empty selection is never flagged; a score of exactly 70 does not count.
func (s *RouteSelector) AllRisky(routes []model.Route) bool {
	if len(routes) == 0 {
		return false
	}
	for _, r := range routes {
		if r.RiskScore <= 70 {
			return false
		}
	}
	return true
}

// recommend returns the first candidate maximizing the weighted desirability
// score, along with that score.
func (s *RouteSelector) recommend(candidates []model.Route, now time.Time) (model.Route, float64) {
	maxFee := decimal.Zero
	var maxDelay time.Duration
	for _, c := range candidates {
		if c.TotalFee.GreaterThan(maxFee) {
			maxFee = c.TotalFee
		}
		if delay := c.Arrival.Sub(now); delay > maxDelay {
			maxDelay = delay
		}
	}

	best := candidates[0]
	bestScore := desirability(candidates[0], now, maxFee, maxDelay)
	for _, c := range candidates[1:] {
		if score := desirability(c, now, maxFee, maxDelay); score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}

// desirability weighs cost 0.4, time 0.3, and risk 0.3, each on an inverted
// 0-100 scale. Cost and delay normalize against the worst candidate; when
// every fee (or every delay) is zero, that dimension contributes no penalty.
func desirability(route model.Route, now time.Time, maxFee decimal.Decimal, maxDelay time.Duration) float64 {
	var normCost float64
	if maxFee.IsPositive() {
		ratio, _ := route.TotalFee.Div(maxFee).Float64()
		normCost = ratio * 100
	}

	var normTime float64
	if maxDelay > 0 {
		normTime = float64(route.Arrival.Sub(now)) / float64(maxDelay) * 100
	}

	return (100-normCost)*0.4 + (100-normTime)*0.3 + (100-route.RiskScore)*0.3
}
