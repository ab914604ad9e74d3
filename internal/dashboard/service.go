// Package dashboard computes profit/loss summaries over a user's
// incomes and expenses.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/principal"
)

// Totaler is the slice of a repository the dashboard needs.
type Totaler interface {
	SumByUser(ctx context.Context, userID int64, start, end *time.Time) (decimal.Decimal, error)
}

type PnL struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	ProfitLoss   decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
}

type Service struct {
	incomes  Totaler
	expenses Totaler
	guard    *principal.Guard
}

func NewService(incomes, expenses Totaler, guard *principal.Guard) *Service {
	return &Service{incomes: incomes, expenses: expenses, guard: guard}
}

// TotalPnL sums all of the principal's incomes and expenses.
func (s *Service) TotalPnL(ctx context.Context, p principal.Principal) (*PnL, error) {
	return s.pnl(ctx, p, nil, nil)
}

// PnLByRange sums incomes and expenses dated within [start, end].
func (s *Service) PnLByRange(ctx context.Context, p principal.Principal, start, end time.Time) (*PnL, error) {
	return s.pnl(ctx, p, &start, &end)
}

func (s *Service) pnl(ctx context.Context, p principal.Principal, start, end *time.Time) (*PnL, error) {
	account, err := s.guard.RequireAuthenticated(ctx, p)
	if err != nil {
		return nil, err
	}

	totalIncome, err := s.incomes.SumByUser(ctx, account.ID, start, end)
	if err != nil {
		return nil, err
	}
	totalExpense, err := s.expenses.SumByUser(ctx, account.ID, start, end)
	if err != nil {
		return nil, err
	}

	return &PnL{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		ProfitLoss:   totalIncome.Sub(totalExpense),
		StartDate:    start,
		EndDate:      end,
	}, nil
}
