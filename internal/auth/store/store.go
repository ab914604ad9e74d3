package store

import (
	"context"
	"errors"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
)

var (
	// ErrNotFound signals a lookup miss. Callers decide whether that is
	// an error or the start of a create path.
	ErrNotFound = errors.New("account not found")

	// ErrConflict signals a violated uniqueness constraint (username,
	// email, or provider+provider_id). The constraints in storage are
	// the sole mechanism guarding concurrent duplicate creation.
	ErrConflict = errors.New("account violates a uniqueness constraint")
)

// AccountStore is the persistence boundary of the identity core.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (*auth.Account, error)
	FindByEmail(ctx context.Context, email string) (*auth.Account, error)
	FindByProviderID(ctx context.Context, provider auth.Provider, providerID string) (*auth.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save inserts when the account has no ID yet and updates otherwise,
	// filling ID and timestamps on the way out.
	Save(ctx context.Context, account *auth.Account) error
}
