package money_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/pkg/money"
)

func TestParse_ValidAmount(t *testing.T) {
	d, err := money.Parse("1234.56")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(1234.56).Equal(d))
}

func TestParse_Garbage_ReturnsError(t *testing.T) {
	_, err := money.Parse("not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestFromFloat_RejectsNaN(t *testing.T) {
	_, err := money.FromFloat(math.NaN())
	require.Error(t, err)
}

func TestFromFloat_RejectsInfinity(t *testing.T) {
	_, err := money.FromFloat(math.Inf(1))
	require.Error(t, err)

	_, err = money.FromFloat(math.Inf(-1))
	require.Error(t, err)
}

func TestFloorCents_TruncatesTowardZero(t *testing.T) {
	d := money.FloorCents(decimal.NewFromFloat(33.339))
	assert.Equal(t, "33.33", d.StringFixed(2))

	// Already at two places stays unchanged.
	d = money.FloorCents(decimal.NewFromFloat(10.50))
	assert.Equal(t, "10.50", d.StringFixed(2))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$125.00", money.FormatUSD(decimal.NewFromInt(125)))
	assert.Equal(t, "$0.35", money.FormatUSD(decimal.NewFromFloat(0.35)))
	assert.Equal(t, "$-3.00", money.FormatUSD(decimal.NewFromInt(-3)))
}

func TestMin(t *testing.T) {
	a := decimal.NewFromInt(5)
	b := decimal.NewFromInt(9)
	assert.True(t, a.Equal(money.Min(a, b)))
	assert.True(t, a.Equal(money.Min(b, a)))
}
