package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

func pathTo(target string, ids ...string) map[string][]model.TransferRelationship {
	paths := make(map[string][]model.TransferRelationship, len(ids))
	for _, id := range ids {
		paths[id] = []model.TransferRelationship{rel(id, target, valueobject.SpeedInstant)}
	}
	return paths
}

func TestNewCombinationGenerator_NormalizesConfig(t *testing.T) {
	generator := service.NewCombinationGenerator(service.CombinationConfig{})

	cfg := generator.Config()
	assert.Equal(t, service.DefaultMaxAccountsPerCombination, cfg.MaxAccountsPerCombination)
	assert.Equal(t, service.DefaultMaxEligibleAccounts, cfg.MaxEligibleAccounts)
	assert.Equal(t, 0, cfg.MaxCombinations)
}

func TestCombinationGenerator_EligibleFiltersAndSorts(t *testing.T) {
	generator := service.NewCombinationGenerator(service.DefaultCombinationConfig())

	a := checking("a", "100")
	b := checking("b", "300")
	c := checking("c", "200")
	funded := fundedOf(&a, &b, &c)

	// c has no path to the target and drops out.
	eligible := generator.Eligible(funded, pathTo("tgt", "a", "b"))

	require.Len(t, eligible, 2)
	assert.Equal(t, "b", eligible[0].Account.ID)
	assert.Equal(t, "a", eligible[1].Account.ID)
}

func TestCombinationGenerator_EligibleTiesKeepInputOrder(t *testing.T) {
	generator := service.NewCombinationGenerator(service.DefaultCombinationConfig())

	a := checking("a", "100")
	b := checking("b", "100")
	funded := fundedOf(&a, &b)

	eligible := generator.Eligible(funded, pathTo("tgt", "a", "b"))

	require.Len(t, eligible, 2)
	assert.Equal(t, "a", eligible[0].Account.ID)
	assert.Equal(t, "b", eligible[1].Account.ID)
}

func TestCombinationGenerator_EligibleTruncatesToCap(t *testing.T) {
	generator := service.NewCombinationGenerator(service.CombinationConfig{MaxEligibleAccounts: 2})

	a := checking("a", "50")
	b := checking("b", "300")
	c := checking("c", "200")
	funded := fundedOf(&a, &b, &c)

	eligible := generator.Eligible(funded, pathTo("tgt", "a", "b", "c"))

	require.Len(t, eligible, 2)
	assert.Equal(t, "b", eligible[0].Account.ID)
	assert.Equal(t, "c", eligible[1].Account.ID)
}

func TestCombinationGenerator_GenerateAcceptsCoveringSubsets(t *testing.T) {
	generator := service.NewCombinationGenerator(service.DefaultCombinationConfig())

	a := checking("a", "60")
	b := checking("b", "50")
	eligible := fundedOf(&a, &b)

	// Neither account covers 100 alone; only the pair qualifies.
	combos := generator.Generate(eligible, dec("100"))

	require.Len(t, combos, 1)
	require.Len(t, combos[0].Members, 2)
	assert.Equal(t, "a", combos[0].Members[0].Account.ID)
	assert.Equal(t, "b", combos[0].Members[1].Account.ID)
	assert.True(t, dec("110").Equal(combos[0].TotalAvailable))
}

func TestCombinationGenerator_ExactCoverQualifies(t *testing.T) {
	generator := service.NewCombinationGenerator(service.DefaultCombinationConfig())

	a := checking("a", "50")
	b := checking("b", "50")

	combos := generator.Generate(fundedOf(&a, &b), dec("100"))

	require.Len(t, combos, 1)
	assert.True(t, dec("100").Equal(combos[0].TotalAvailable))
}

func TestCombinationGenerator_EnumeratesAllQualifyingSubsets(t *testing.T) {
	generator := service.NewCombinationGenerator(service.DefaultCombinationConfig())

	a := checking("a", "100")
	b := checking("b", "100")
	c := checking("c", "100")

	// Every non-empty subset of three accounts covers 100.
	combos := generator.Generate(fundedOf(&a, &b, &c), dec("100"))

	assert.Len(t, combos, 7)
}

func TestCombinationGenerator_HonorsSizeCap(t *testing.T) {
	generator := service.NewCombinationGenerator(service.CombinationConfig{MaxAccountsPerCombination: 1})

	a := checking("a", "60")
	b := checking("b", "50")

	// The only covering subset needs two accounts, which the cap forbids.
	combos := generator.Generate(fundedOf(&a, &b), dec("100"))

	assert.Empty(t, combos)
}

func TestCombinationGenerator_StopsAtMaxCombinations(t *testing.T) {
	generator := service.NewCombinationGenerator(service.CombinationConfig{MaxCombinations: 2})

	a := checking("a", "100")
	b := checking("b", "100")
	c := checking("c", "100")

	combos := generator.Generate(fundedOf(&a, &b, &c), dec("50"))

	assert.Len(t, combos, 2)
}
