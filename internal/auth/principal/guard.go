package principal

import (
	"context"
	"errors"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/store"
)

// Guard is the gate every protected operation passes before acting.
type Guard struct {
	store store.AccountStore
}

func NewGuard(accounts store.AccountStore) *Guard {
	return &Guard{store: accounts}
}

// RequireAuthenticated resolves the principal to its canonical account,
// or fails with ErrUnauthenticated. A token naming a vanished or
// disabled account does not authenticate.
func (g *Guard) RequireAuthenticated(ctx context.Context, p Principal) (*auth.Account, error) {
	if !p.Authenticated {
		return nil, auth.ErrUnauthenticated
	}

	account, err := g.store.FindByUsername(ctx, p.Username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, auth.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !account.Enabled {
		return nil, auth.ErrUnauthenticated
	}
	return account, nil
}

// AuthorizeOwnership allows the principal only when it owns the target
// resource. Roles do not override ownership; every authenticated user is
// equally bound.
func (g *Guard) AuthorizeOwnership(ctx context.Context, p Principal, ownerID int64) error {
	account, err := g.RequireAuthenticated(ctx, p)
	if err != nil {
		return err
	}
	if account.ID != ownerID {
		return auth.ErrForbidden
	}
	return nil
}
