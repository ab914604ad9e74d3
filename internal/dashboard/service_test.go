package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/principal"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/store"
)

// stubTotaler returns a fixed total and records the bounds it was asked for.
type stubTotaler struct {
	total      decimal.Decimal
	start, end *time.Time
}

func (s *stubTotaler) SumByUser(_ context.Context, _ int64, start, end *time.Time) (decimal.Decimal, error) {
	s.start, s.end = start, end
	return s.total, nil
}

func newDashboard(t *testing.T, income, expense int64) (*Service, *stubTotaler, *stubTotaler) {
	t.Helper()
	accounts := store.NewMemoryStore()
	err := accounts.Save(context.Background(), &auth.Account{
		Username: "alice",
		Email:    "alice@example.com",
		Provider: auth.ProviderLocal,
		Roles:    []string{auth.RoleUser},
		Enabled:  true,
	})
	require.NoError(t, err)

	incomes := &stubTotaler{total: decimal.NewFromInt(income)}
	expenses := &stubTotaler{total: decimal.NewFromInt(expense)}
	return NewService(incomes, expenses, principal.NewGuard(accounts)), incomes, expenses
}

func alice() principal.Principal {
	return principal.Principal{Username: "alice", Authenticated: true}
}

func TestTotalPnL(t *testing.T) {
	service, _, _ := newDashboard(t, 5000, 1200)

	pnl, err := service.TotalPnL(context.Background(), alice())
	require.NoError(t, err)

	assert.True(t, pnl.TotalIncome.Equal(decimal.NewFromInt(5000)))
	assert.True(t, pnl.TotalExpense.Equal(decimal.NewFromInt(1200)))
	assert.True(t, pnl.ProfitLoss.Equal(decimal.NewFromInt(3800)))
	assert.Nil(t, pnl.StartDate)
	assert.Nil(t, pnl.EndDate)
}

func TestPnLCanBeNegative(t *testing.T) {
	service, _, _ := newDashboard(t, 100, 250)

	pnl, err := service.TotalPnL(context.Background(), alice())
	require.NoError(t, err)
	assert.True(t, pnl.ProfitLoss.Equal(decimal.NewFromInt(-150)))
}

func TestPnLByRangePassesBounds(t *testing.T) {
	service, incomes, expenses := newDashboard(t, 5000, 1200)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	pnl, err := service.PnLByRange(context.Background(), alice(), start, end)
	require.NoError(t, err)

	require.NotNil(t, pnl.StartDate)
	require.NotNil(t, pnl.EndDate)
	assert.True(t, start.Equal(*incomes.start))
	assert.True(t, end.Equal(*incomes.end))
	assert.True(t, start.Equal(*expenses.start))
	assert.True(t, end.Equal(*expenses.end))
}

func TestPnLRequiresAuthentication(t *testing.T) {
	service, _, _ := newDashboard(t, 0, 0)

	_, err := service.TotalPnL(context.Background(), principal.Anonymous)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
