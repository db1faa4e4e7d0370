package service

import (
	"fmt"
	"time"

	"github.com/cashroute/cashroute/internal/domain/model"
)

// Planner sequences the routing pipeline into the single public planning
// operation. The pipeline is synchronous and free of I/O; the path cache is
// its only mutable state, so a planner is safe to share across goroutines
// as long as every request sees the same transfer matrix. Callers that
// change matrices between requests either reset the cache or build a
// planner per request.
type Planner struct {
	validator  *StructuralValidator
	classifier *ErrorClassifier
	sources    *SourceIdentifier
	finder     *PathFinder
	generator  *CombinationGenerator
	builder    *RouteBuilder
	risk       *RiskCalculator
	selector   *RouteSelector
}

// NewPlanner assembles the pipeline with the given combination tunables and
// path cache. A nil cache gets a fresh private one.
func NewPlanner(cfg CombinationConfig, cache *PathCache) *Planner {
	balances := NewBalanceEvaluator()
	finder := NewPathFinder(cache)
	return &Planner{
		validator:  NewStructuralValidator(),
		classifier: NewErrorClassifier(balances, finder),
		sources:    NewSourceIdentifier(balances),
		finder:     finder,
		generator:  NewCombinationGenerator(cfg),
		builder:    NewRouteBuilder(NewArrivalEstimator(NewBusinessCalendar())),
		risk:       NewRiskCalculator(),
		selector:   NewRouteSelector(),
	}
}

// Plan computes the three ranked routes for the goal, or refuses it.
//
// The error return carries one of two distinct taxonomies and they never
// mix: a *model.RoutingError is an expected business refusal (past deadline,
// insufficient funds, no path) computed as data, while any other error is a
// fault (malformed request, broken precondition) that aborts with no partial
// result. A refusal never accompanies route data.
func (p *Planner) Plan(goal model.Goal, accounts []model.Account, matrix []model.TransferRelationship, now time.Time) (model.RoutingResult, error) {
	if err := p.validator.Validate(goal, accounts, matrix); err != nil {
		return model.RoutingResult{}, err
	}

	if refusal := p.classifier.CheckDeadline(goal, now); refusal != nil {
		return model.RoutingResult{}, refusal
	}
	if refusal := p.classifier.CheckFunds(accounts, goal); refusal != nil {
		return model.RoutingResult{}, refusal
	}

	paths := p.finder.MapPaths(goal.TargetAccountID, matrix)
	funded := p.sources.Identify(accounts)

	if refusal := p.classifier.CheckReachability(accounts, funded, paths, goal, matrix); refusal != nil {
		return model.RoutingResult{}, refusal
	}

	eligible := p.generator.Eligible(funded, paths)
	combos := p.generator.Generate(eligible, goal.Amount)
	if len(combos) == 0 {
		return model.RoutingResult{}, p.classifier.ClassifyEmptyGeneration(
			accounts, funded, eligible, paths, goal, matrix,
			p.generator.Config().MaxAccountsPerCombination,
		)
	}

	candidates := make([]model.Route, 0, len(combos))
	for _, combo := range combos {
		route, err := p.builder.Build(combo, goal.Amount, paths, now)
		if err != nil {
			return model.RoutingResult{}, fmt.Errorf("build route: %w", err)
		}
		assessment := p.risk.Assess(route, goal.Deadline)
		route.RiskScore = assessment.Score
		route.RiskLevel = assessment.Level
		candidates = append(candidates, route)
	}

	selected := p.selector.Select(candidates, now)

	return model.RoutingResult{
		Routes:         selected,
		AllRoutesRisky: p.selector.AllRisky(selected),
	}, nil
}

// ResetPathCache drops the memoized paths. Callers reusing one planner
// across transfer-matrix versions must reset between them.
func (p *Planner) ResetPathCache() {
	p.finder.Cache().Clear()
}
