package expense

import (
	"context"
	"errors"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/principal"
)

var errInvalidAmount = errors.New("amount must be greater than zero")

// Service wraps the repository with ownership authorization. Every
// operation gates on the acting principal before touching a row.
type Service struct {
	repo  Repository
	guard *principal.Guard
}

func NewService(repo Repository, guard *principal.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

func (s *Service) Add(ctx context.Context, p principal.Principal, e Expense) (*Expense, error) {
	account, err := s.guard.RequireAuthenticated(ctx, p)
	if err != nil {
		return nil, err
	}
	if !e.Amount.IsPositive() {
		return nil, errInvalidAmount
	}

	e.ID = 0
	e.UserID = account.ID
	if err := s.repo.Insert(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context, p principal.Principal, f Filter, sort Sort) ([]Expense, error) {
	account, err := s.guard.RequireAuthenticated(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, account.ID, f, sort)
}

func (s *Service) Get(ctx context.Context, p principal.Principal, id int64) (*Expense, error) {
	if _, err := s.guard.RequireAuthenticated(ctx, p); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AuthorizeOwnership(ctx, p, e.UserID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, p principal.Principal, id int64, in Expense) (*Expense, error) {
	e, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, errInvalidAmount
	}

	e.Description = in.Description
	e.Category = in.Category
	e.Amount = in.Amount
	e.DateOfExpense = in.DateOfExpense
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, p principal.Principal, id int64) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
