// Package reconciler maps identities arriving from any authentication
// path onto exactly one canonical account.
package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/credentials"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/store"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/logger"
)

type Reconciler struct {
	store store.AccountStore
}

func New(accounts store.AccountStore) *Reconciler {
	return &Reconciler{store: accounts}
}

// Reconcile resolves a provider identity assertion to one account.
// Ordered policy, first match wins:
//
//  1. exact (provider, provider id) match: refresh the username from the
//     assertion and return the account
//  2. email match on any provider: attach the incoming provider and id
//     to that account (account linking)
//  3. otherwise create a fresh provider-only account
//
// Email is the sole cross-provider linking key; an assertion without one
// is rejected before anything is persisted.
func (r *Reconciler) Reconcile(ctx context.Context, identity *auth.Identity) (*auth.Account, error) {
	if identity == nil {
		return nil, errors.New("identity is nil")
	}
	if identity.Email == "" {
		return nil, auth.ErrIdentityRejected
	}

	// 1. Exact identity lookup
	account, err := r.store.FindByProviderID(ctx, identity.Provider, identity.ProviderUserID)
	if err == nil {
		return r.refreshUsername(ctx, account, identity)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// 2. Email-based linking: existing account, new login path
	account, err = r.store.FindByEmail(ctx, identity.Email)
	if err == nil {
		account.Provider = identity.Provider
		account.ProviderID = identity.ProviderUserID
		if err := r.store.Save(ctx, account); err != nil {
			return r.recoverFromConflict(ctx, identity, err)
		}
		logger.Info("linked provider to existing account", map[string]any{
			"account_id": account.ID,
			"provider":   identity.Provider,
		})
		return account, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// 3. Create new account
	account = &auth.Account{
		Username:   identity.DisplayName,
		Email:      identity.Email,
		Provider:   identity.Provider,
		ProviderID: identity.ProviderUserID,
		Roles:      []string{auth.RoleUser},
		Enabled:    true,
	}
	if err := r.store.Save(ctx, account); err != nil {
		return r.recoverFromConflict(ctx, identity, err)
	}
	return account, nil
}

// RegisterLocal creates a password-backed account. Username and email
// collisions both fail the same way; nothing is mutated on failure.
func (r *Reconciler) RegisterLocal(ctx context.Context, username, password, email string) (*auth.Account, error) {
	taken, err := r.store.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, auth.ErrDuplicateIdentity
	}

	taken, err = r.store.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, auth.ErrDuplicateIdentity
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &auth.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Provider:     auth.ProviderLocal,
		Roles:        []string{auth.RoleUser},
		Enabled:      true,
	}
	if err := r.store.Save(ctx, account); err != nil {
		// A concurrent signup won the race between the existence checks
		// and the insert.
		if errors.Is(err, store.ErrConflict) {
			return nil, auth.ErrDuplicateIdentity
		}
		return nil, err
	}
	return account, nil
}

// AuthenticateLocal verifies a password login. The identifier may be a
// username or an email; unknown account and wrong password are not
// distinguished.
func (r *Reconciler) AuthenticateLocal(ctx context.Context, usernameOrEmail, password string) (*auth.Account, error) {
	account, err := r.store.FindByUsername(ctx, usernameOrEmail)
	if errors.Is(err, store.ErrNotFound) {
		account, err = r.store.FindByEmail(ctx, usernameOrEmail)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, auth.ErrInvalidCredential
	}
	if err != nil {
		return nil, err
	}

	if !account.Enabled || account.PasswordHash == "" {
		return nil, auth.ErrInvalidCredential
	}
	if err := credentials.VerifyPassword(account.PasswordHash, password); err != nil {
		return nil, auth.ErrInvalidCredential
	}
	return account, nil
}

func (r *Reconciler) refreshUsername(ctx context.Context, account *auth.Account, identity *auth.Identity) (*auth.Account, error) {
	if identity.DisplayName == "" || identity.DisplayName == account.Username {
		return account, nil
	}

	previous := account.Username
	account.Username = identity.DisplayName
	if err := r.store.Save(ctx, account); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Another account holds the new name; keep the old one.
			account.Username = previous
			return account, nil
		}
		return nil, err
	}
	return account, nil
}

// recoverFromConflict retries a uniqueness violation as a lookup: if a
// concurrent reconciliation created or linked the account first, return
// that account instead of failing.
func (r *Reconciler) recoverFromConflict(ctx context.Context, identity *auth.Identity, saveErr error) (*auth.Account, error) {
	if !errors.Is(saveErr, store.ErrConflict) {
		return nil, saveErr
	}

	account, err := r.store.FindByProviderID(ctx, identity.Provider, identity.ProviderUserID)
	if err == nil {
		return account, nil
	}
	account, err = r.store.FindByEmail(ctx, identity.Email)
	if err == nil {
		return account, nil
	}
	return nil, fmt.Errorf("%w: %s", auth.ErrDuplicateIdentity, identity.Email)
}
