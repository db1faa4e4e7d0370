package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/service"
)

func TestSourceIdentifier_PositiveAvailableOnly(t *testing.T) {
	identifier := service.NewSourceIdentifier(service.NewBalanceEvaluator())

	drained := checking("drained", "100")
	drained.Pending = []model.Transaction{pendingTx("drained", "-150")}

	accounts := []model.Account{
		checking("chk", "100"),
		checking("empty", "0"),
		checking("overdrawn", "-50"),
		drained,
	}

	funded := identifier.Identify(accounts)

	require.Len(t, funded, 1)
	assert.Equal(t, "chk", funded[0].Account.ID)
	assert.True(t, dec("100").Equal(funded[0].Available))
}

func TestSourceIdentifier_KeepsInputOrder(t *testing.T) {
	identifier := service.NewSourceIdentifier(service.NewBalanceEvaluator())

	accounts := []model.Account{
		checking("small", "10"),
		checking("big", "9000"),
		checking("mid", "500"),
	}

	funded := identifier.Identify(accounts)

	require.Len(t, funded, 3)
	assert.Equal(t, "small", funded[0].Account.ID)
	assert.Equal(t, "big", funded[1].Account.ID)
	assert.Equal(t, "mid", funded[2].Account.ID)
}

func TestSourceIdentifier_AvailableNetsPendingDebits(t *testing.T) {
	identifier := service.NewSourceIdentifier(service.NewBalanceEvaluator())

	acct := checking("chk", "100")
	acct.Pending = []model.Transaction{pendingTx("chk", "-30")}
	accounts := []model.Account{acct}

	funded := identifier.Identify(accounts)

	require.Len(t, funded, 1)
	assert.True(t, dec("70").Equal(funded[0].Available))
	// Entries point at the caller's slice, not copies.
	assert.Same(t, &accounts[0], funded[0].Account)
}
