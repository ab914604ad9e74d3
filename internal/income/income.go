package income

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("income not found")

type Source string

const (
	SourceInvestment Source = "FROM_INVESTMENT"
	SourceSalary     Source = "SALARY"
	SourceTrading    Source = "FROM_TRADING"
)

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceInvestment, SourceSalary, SourceTrading:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown income source: %s", s)
}

type Income struct {
	ID           int64
	UserID       int64
	Description  string
	Source       Source
	Amount       decimal.Decimal
	DateOfIncome time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows a listing; nil fields are ignored.
type Filter struct {
	Source    *Source
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Sort orders a listing. By is one of "amount", "date", "source".
type Sort struct {
	By   string
	Desc bool
}

type Repository interface {
	Insert(ctx context.Context, in *Income) error
	FindByID(ctx context.Context, id int64) (*Income, error)
	ListByUser(ctx context.Context, userID int64, f Filter, s Sort) ([]Income, error)
	Update(ctx context.Context, in *Income) error
	Delete(ctx context.Context, id int64) error
	SumByUser(ctx context.Context, userID int64, start, end *time.Time) (decimal.Decimal, error)
}
