package income

import (
	"context"
	"errors"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/principal"
)

var errInvalidAmount = errors.New("amount must be greater than zero")

// Service wraps the repository with ownership authorization.
type Service struct {
	repo  Repository
	guard *principal.Guard
}

func NewService(repo Repository, guard *principal.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

func (s *Service) Add(ctx context.Context, p principal.Principal, in Income) (*Income, error) {
	account, err := s.guard.RequireAuthenticated(ctx, p)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, errInvalidAmount
	}

	in.ID = 0
	in.UserID = account.ID
	if err := s.repo.Insert(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *Service) List(ctx context.Context, p principal.Principal, f Filter, sort Sort) ([]Income, error) {
	account, err := s.guard.RequireAuthenticated(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, account.ID, f, sort)
}

func (s *Service) Get(ctx context.Context, p principal.Principal, id int64) (*Income, error) {
	if _, err := s.guard.RequireAuthenticated(ctx, p); err != nil {
		return nil, err
	}

	in, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AuthorizeOwnership(ctx, p, in.UserID); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Update(ctx context.Context, p principal.Principal, id int64, update Income) (*Income, error) {
	in, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !update.Amount.IsPositive() {
		return nil, errInvalidAmount
	}

	in.Description = update.Description
	in.Source = update.Source
	in.Amount = update.Amount
	in.DateOfIncome = update.DateOfIncome
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Delete(ctx context.Context, p principal.Principal, id int64) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
