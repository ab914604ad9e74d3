package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("expense not found")

type Category string

const (
	CategoryPersonal   Category = "PERSONAL"
	CategorySurvival   Category = "SURVIVAL_LIVELIHOOD"
	CategoryInvestment Category = "INVESTMENT"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryPersonal, CategorySurvival, CategoryInvestment:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown expense category: %s", s)
}

type Expense struct {
	ID            int64
	UserID        int64
	Description   string
	Category      Category
	Amount        decimal.Decimal
	DateOfExpense time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter narrows a listing; nil fields are ignored.
type Filter struct {
	Category  *Category
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Sort orders a listing. By is one of "amount", "date", "category";
// anything else falls back to insertion order.
type Sort struct {
	By   string
	Desc bool
}

type Repository interface {
	Insert(ctx context.Context, e *Expense) error
	FindByID(ctx context.Context, id int64) (*Expense, error)
	ListByUser(ctx context.Context, userID int64, f Filter, s Sort) ([]Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id int64) error

	// SumByUser totals amounts, optionally bounded by dates. No rows
	// sums to zero.
	SumByUser(ctx context.Context, userID int64, start, end *time.Time) (decimal.Decimal, error)
}
