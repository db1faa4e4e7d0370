package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/model"
)

// ErrorClassifier detects the three business refusals: a deadline already in
// the past, balances that cannot cover the goal, and a target no funded
// account can reach. A nil return from every check means the pipeline keeps
// going.
type ErrorClassifier struct {
	balances *BalanceEvaluator
	finder   *PathFinder
}

// NewErrorClassifier creates an ErrorClassifier sharing the pipeline's
// evaluator and path finder.
func NewErrorClassifier(balances *BalanceEvaluator, finder *PathFinder) *ErrorClassifier {
	return &ErrorClassifier{balances: balances, finder: finder}
}

// CheckDeadline refuses goals whose deadline lies strictly before the
// current time, before any combination work happens.
func (c *ErrorClassifier) CheckDeadline(goal model.Goal, now time.Time) *model.RoutingError {
	if goal.Deadline.Before(now) {
		return model.NewPastDeadlineError(goal.Deadline, now)
	}
	return nil
}

// CheckFunds refuses goals the pooled available balance of every input
// account cannot cover, reporting the shortfall.
func (c *ErrorClassifier) CheckFunds(accounts []model.Account, goal model.Goal) *model.RoutingError {
	total := decimal.Zero
	for _, acct := range accounts {
		total = total.Add(c.balances.Available(acct))
	}
	if total.LessThan(goal.Amount) {
		return model.NewInsufficientFundsError(goal.Amount.Sub(total))
	}
	return nil
}

// CheckReachability refuses goals no funded account holds a path toward,
// suggesting a bridging account when one exists.
func (c *ErrorClassifier) CheckReachability(
	accounts []model.Account,
	funded []model.FundedAccount,
	paths map[string][]model.TransferRelationship,
	goal model.Goal,
	matrix []model.TransferRelationship,
) *model.RoutingError {
	for _, fa := range funded {
		if len(paths[fa.Account.ID]) > 0 {
			return nil
		}
	}
	return model.NewNoPathError(c.suggestBridge(accounts, funded, goal.TargetAccountID, matrix))
}

// ClassifyEmptyGeneration explains a combination search that found nothing.
// Funded accounts stranded without a path make it a no-path outcome with the
// usual bridge suggestion; otherwise the size cap kept the reachable
// balances from pooling enough, which is an insufficient-funds outcome whose
// shortfall measures the gap to the best allowed pool.
func (c *ErrorClassifier) ClassifyEmptyGeneration(
	accounts []model.Account,
	funded []model.FundedAccount,
	eligible []model.FundedAccount,
	paths map[string][]model.TransferRelationship,
	goal model.Goal,
	matrix []model.TransferRelationship,
	maxPerCombination int,
) *model.RoutingError {
	for _, fa := range funded {
		if len(paths[fa.Account.ID]) == 0 {
			return model.NewNoPathError(c.suggestBridge(accounts, funded, goal.TargetAccountID, matrix))
		}
	}

	// Eligible is sorted by balance descending, so the first
	// maxPerCombination entries are the richest pool any combination may
	// use.
	bestPool := decimal.Zero
	for i, fa := range eligible {
		if i == maxPerCombination {
			break
		}
		bestPool = bestPool.Add(fa.Available)
	}
	return model.NewInsufficientFundsError(goal.Amount.Sub(bestPool))
}

// suggestBridge scans accounts in input order for one that could connect the
// stranded sources to the target: an account holding a live path to the
// target that some funded source is wired toward in the raw matrix. The raw
// matrix is deliberate: when every live route is dead, the useful advice is
// which existing-but-unusable link to enable. The target is never suggested.
func (c *ErrorClassifier) suggestBridge(
	accounts []model.Account,
	funded []model.FundedAccount,
	target string,
	matrix []model.TransferRelationship,
) string {
	wired := reachableIgnoringAvailability(funded, matrix)
	for _, acct := range accounts {
		if acct.ID == target {
			continue
		}
		if !wired[acct.ID] {
			continue
		}
		if len(c.finder.FindPath(acct.ID, target, matrix)) > 0 {
			return acct.ID
		}
	}
	return ""
}

// reachableIgnoringAvailability walks the raw matrix breadth-first from
// every funded source at once and returns the ids it can reach.
func reachableIgnoringAvailability(funded []model.FundedAccount, matrix []model.TransferRelationship) map[string]bool {
	adjacency := make(map[string][]string)
	for _, rel := range matrix {
		adjacency[rel.FromID] = append(adjacency[rel.FromID], rel.ToID)
	}

	reached := make(map[string]bool)
	queue := make([]string, 0, len(funded))
	for _, fa := range funded {
		queue = append(queue, fa.Account.ID)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[cur] {
			if reached[next] {
				continue
			}
			reached[next] = true
			queue = append(queue, next)
		}
	}
	return reached
}
