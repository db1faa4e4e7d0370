package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

func newBuilder() *service.RouteBuilder {
	return service.NewRouteBuilder(newEstimator())
}

func comboOf(members ...model.FundedAccount) model.AccountCombination {
	total := decimal.Zero
	for _, m := range members {
		total = total.Add(m.Available)
	}
	return model.AccountCombination{Members: members, TotalAvailable: total}
}

func TestRouteBuilder_SingleSourceSingleHop(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "1000")
	paths := map[string][]model.TransferRelationship{
		"a": {relWithFee("a", "tgt", valueobject.SpeedInstant, "1.25")},
	}

	route, err := builder.Build(comboOf(fundedOf(&a)...), dec("100"), paths, mondayMorning)
	require.NoError(t, err)

	require.Len(t, route.Steps, 1)
	assert.Equal(t, "a", route.Steps[0].FromID)
	assert.Equal(t, "tgt", route.Steps[0].ToID)
	assert.True(t, dec("100").Equal(route.Steps[0].Amount))
	assert.True(t, dec("1.25").Equal(route.TotalFee))
	assert.True(t, route.Arrival.Equal(march(10, 15, 5)), "got %s", route.Arrival)
}

func TestRouteBuilder_SplitsProportionally(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "600")
	b := checking("b", "400")
	paths := map[string][]model.TransferRelationship{
		"a": {rel("a", "tgt", valueobject.SpeedInstant)},
		"b": {rel("b", "tgt", valueobject.SpeedInstant)},
	}

	route, err := builder.Build(comboOf(fundedOf(&a, &b)...), dec("100"), paths, mondayMorning)
	require.NoError(t, err)

	// 100 * 600/1000 = 60, remainder 40.
	require.Len(t, route.Steps, 2)
	assert.True(t, dec("60").Equal(route.Steps[0].Amount), "got %s", route.Steps[0].Amount)
	assert.True(t, dec("40").Equal(route.Steps[1].Amount), "got %s", route.Steps[1].Amount)
}

func TestRouteBuilder_FlooringRemainderGoesLast(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "100")
	b := checking("b", "100")
	c := checking("c", "100")
	paths := map[string][]model.TransferRelationship{
		"a": {rel("a", "tgt", valueobject.SpeedInstant)},
		"b": {rel("b", "tgt", valueobject.SpeedInstant)},
		"c": {rel("c", "tgt", valueobject.SpeedInstant)},
	}

	route, err := builder.Build(comboOf(fundedOf(&a, &b, &c)...), dec("100"), paths, mondayMorning)
	require.NoError(t, err)

	// Equal thirds floor to 33.33; the last member absorbs the extra cent.
	require.Len(t, route.Steps, 3)
	assert.True(t, dec("33.33").Equal(route.Steps[0].Amount))
	assert.True(t, dec("33.33").Equal(route.Steps[1].Amount))
	assert.True(t, dec("33.34").Equal(route.Steps[2].Amount))
}

func TestRouteBuilder_LastAllocationNeverOverdraws(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "33.335")
	b := checking("b", "33.335")
	c := checking("c", "33.33")
	paths := map[string][]model.TransferRelationship{
		"a": {rel("a", "tgt", valueobject.SpeedInstant)},
		"b": {rel("b", "tgt", valueobject.SpeedInstant)},
		"c": {rel("c", "tgt", valueobject.SpeedInstant)},
	}

	route, err := builder.Build(comboOf(fundedOf(&a, &b, &c)...), dec("100"), paths, mondayMorning)
	require.NoError(t, err)

	// The remainder of 33.34 exceeds c's balance and clamps to it.
	require.Len(t, route.Steps, 3)
	assert.True(t, dec("33.33").Equal(route.Steps[2].Amount), "got %s", route.Steps[2].Amount)
}

func TestRouteBuilder_ChainsHopInitiations(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "500")
	paths := map[string][]model.TransferRelationship{
		"a": {
			rel("a", "mid", valueobject.SpeedInstant),
			rel("mid", "tgt", valueobject.SpeedSameDay),
		},
	}

	route, err := builder.Build(comboOf(fundedOf(&a)...), dec("100"), paths, mondayMorning)
	require.NoError(t, err)

	require.Len(t, route.Steps, 2)
	// The second hop initiates at the first hop's arrival, 15:05 UTC, which
	// is still before Monday's cutoff.
	assert.True(t, route.Steps[0].Arrival.Equal(march(10, 15, 5)))
	assert.True(t, route.Steps[1].Arrival.Equal(march(10, 22, 0)), "got %s", route.Steps[1].Arrival)
	assert.True(t, route.Arrival.Equal(march(10, 22, 0)))

	// A multi-hop transfer carries the full allocation on every hop.
	assert.True(t, dec("100").Equal(route.Steps[0].Amount))
	assert.True(t, dec("100").Equal(route.Steps[1].Amount))
}

func TestRouteBuilder_ArrivalIsLatestAcrossMembers(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "500")
	b := checking("b", "500")
	paths := map[string][]model.TransferRelationship{
		"a": {rel("a", "tgt", valueobject.SpeedThreeDay)},
		"b": {rel("b", "tgt", valueobject.SpeedInstant)},
	}

	route, err := builder.Build(comboOf(fundedOf(&a, &b)...), dec("600"), paths, mondayMorning)
	require.NoError(t, err)

	assert.True(t, route.Arrival.Equal(march(13, 22, 0)), "got %s", route.Arrival)
}

func TestRouteBuilder_SumsFeesAcrossHops(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "500")
	paths := map[string][]model.TransferRelationship{
		"a": {
			relWithFee("a", "mid", valueobject.SpeedInstant, "1.00"),
			relWithFee("mid", "tgt", valueobject.SpeedInstant, "2.50"),
		},
	}

	route, err := builder.Build(comboOf(fundedOf(&a)...), dec("100"), paths, mondayMorning)
	require.NoError(t, err)

	assert.True(t, dec("3.50").Equal(route.TotalFee))
}

func TestRouteBuilder_MissingFeeCountsAsZero(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "500")
	paths := map[string][]model.TransferRelationship{
		"a": {rel("a", "tgt", valueobject.SpeedInstant)},
	}

	route, err := builder.Build(comboOf(fundedOf(&a)...), dec("100"), paths, mondayMorning)
	require.NoError(t, err)

	assert.True(t, route.TotalFee.IsZero())
	assert.True(t, route.Steps[0].Fee.IsZero())
}

func TestRouteBuilder_MemberWithoutPathFails(t *testing.T) {
	builder := newBuilder()

	a := checking("a", "500")

	_, err := builder.Build(comboOf(fundedOf(&a)...), dec("100"), nil, mondayMorning)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a path")
}
