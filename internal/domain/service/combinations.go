package service

import (
	"math/bits"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/model"
)

// Combination search defaults. The subset-size cap is the primary guard
// against blow-up; the eligible-account cap bounds the 2^n enumeration
// itself so pathological inputs cannot enumerate millions of subsets.
const (
	DefaultMaxAccountsPerCombination = 5
	DefaultMaxEligibleAccounts       = 16
)

// CombinationConfig bounds the subset search.
type CombinationConfig struct {
	// MaxAccountsPerCombination caps how many accounts one combination may
	// pool together.
	MaxAccountsPerCombination int
	// MaxCombinations stops enumeration after this many accepted
	// combinations. Zero means unlimited.
	MaxCombinations int
	// MaxEligibleAccounts pre-limits the search to the top-K accounts by
	// available balance.
	MaxEligibleAccounts int
}

// DefaultCombinationConfig returns the production tunables.
func DefaultCombinationConfig() CombinationConfig {
	return CombinationConfig{
		MaxAccountsPerCombination: DefaultMaxAccountsPerCombination,
		MaxEligibleAccounts:       DefaultMaxEligibleAccounts,
	}
}

// CombinationGenerator enumerates subsets of eligible source accounts whose
// pooled available balance covers the goal amount.
type CombinationGenerator struct {
	cfg CombinationConfig
}

// NewCombinationGenerator creates a generator, normalizing non-positive
// tunables to the defaults.
func NewCombinationGenerator(cfg CombinationConfig) *CombinationGenerator {
	if cfg.MaxAccountsPerCombination <= 0 {
		cfg.MaxAccountsPerCombination = DefaultMaxAccountsPerCombination
	}
	if cfg.MaxEligibleAccounts <= 0 {
		cfg.MaxEligibleAccounts = DefaultMaxEligibleAccounts
	}
	return &CombinationGenerator{cfg: cfg}
}

// Config returns the generator's effective tunables.
func (g *CombinationGenerator) Config() CombinationConfig {
	return g.cfg
}

// Eligible narrows funded accounts to those that can reach the target,
// sorted by available balance descending (stable, so ties keep input order)
// and truncated to the eligible-account cap. Larger balances surface valid
// combinations earlier in the enumeration.
func (g *CombinationGenerator) Eligible(funded []model.FundedAccount, paths map[string][]model.TransferRelationship) []model.FundedAccount {
	eligible := make([]model.FundedAccount, 0, len(funded))
	for _, fa := range funded {
		if len(paths[fa.Account.ID]) > 0 {
			eligible = append(eligible, fa)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Available.GreaterThan(eligible[j].Available)
	})

	if len(eligible) > g.cfg.MaxEligibleAccounts {
		eligible = eligible[:g.cfg.MaxEligibleAccounts]
	}
	return eligible
}

// Generate bitmask-enumerates the non-empty subsets of the eligible list,
// skipping those over the size cap, and accepts every subset whose pooled
// balance covers the goal. Accepted combinations come back in enumeration
// order; when a combinations cap is set, enumeration stops at the cap.
func (g *CombinationGenerator) Generate(eligible []model.FundedAccount, goal decimal.Decimal) []model.AccountCombination {
	var combos []model.AccountCombination

	n := len(eligible)
	for mask := 1; mask < 1<<n; mask++ {
		if bits.OnesCount(uint(mask)) > g.cfg.MaxAccountsPerCombination {
			continue
		}

		members := make([]model.FundedAccount, 0, bits.OnesCount(uint(mask)))
		total := decimal.Zero
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				members = append(members, eligible[i])
				total = total.Add(eligible[i].Available)
			}
		}

		if total.GreaterThanOrEqual(goal) {
			combos = append(combos, model.AccountCombination{Members: members, TotalAvailable: total})
			if g.cfg.MaxCombinations > 0 && len(combos) >= g.cfg.MaxCombinations {
				break
			}
		}
	}

	return combos
}
