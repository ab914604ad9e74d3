package reconciler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/reconciler"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/store"
)

func googleIdentity() *auth.Identity {
	return &auth.Identity{
		Provider:       auth.ProviderGoogle,
		ProviderUserID: "google-123",
		Email:          "alice@example.com",
		DisplayName:    "alice",
	}
}

func TestReconcileRejectsMissingEmail(t *testing.T) {
	accounts := store.NewMemoryStore()
	rec := reconciler.New(accounts)

	identity := googleIdentity()
	identity.Email = ""

	_, err := rec.Reconcile(context.Background(), identity)
	assert.ErrorIs(t, err, auth.ErrIdentityRejected)

	// Nothing was persisted.
	_, err = accounts.FindByProviderID(context.Background(), auth.ProviderGoogle, "google-123")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReconcileCreatesNewAccount(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())

	account, err := rec.Reconcile(context.Background(), googleIdentity())
	require.NoError(t, err)

	assert.NotZero(t, account.ID)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Equal(t, auth.ProviderGoogle, account.Provider)
	assert.Equal(t, "google-123", account.ProviderID)
	assert.Equal(t, []string{auth.RoleUser}, account.Roles)
	assert.True(t, account.Enabled)
	assert.Empty(t, account.PasswordHash)
}

func TestReconcileIsIdempotentForSameIdentity(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())
	ctx := context.Background()

	first, err := rec.Reconcile(ctx, googleIdentity())
	require.NoError(t, err)

	second, err := rec.Reconcile(ctx, googleIdentity())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestReconcileLinksByEmail(t *testing.T) {
	accounts := store.NewMemoryStore()
	rec := reconciler.New(accounts)
	ctx := context.Background()

	local, err := rec.RegisterLocal(ctx, "alice", "s3cretpass", "alice@example.com")
	require.NoError(t, err)

	// Same email arriving via Google links onto the local account.
	linked, err := rec.Reconcile(ctx, googleIdentity())
	require.NoError(t, err)

	assert.Equal(t, local.ID, linked.ID)
	assert.Equal(t, auth.ProviderGoogle, linked.Provider)
	assert.Equal(t, "google-123", linked.ProviderID)

	// The exact identity lookup now resolves to the same account.
	byProvider, err := accounts.FindByProviderID(ctx, auth.ProviderGoogle, "google-123")
	require.NoError(t, err)
	assert.Equal(t, local.ID, byProvider.ID)

	// Password auth still works after linking.
	back, err := rec.AuthenticateLocal(ctx, "alice", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, local.ID, back.ID)
}

func TestReconcileRefreshesUsername(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())
	ctx := context.Background()

	_, err := rec.Reconcile(ctx, googleIdentity())
	require.NoError(t, err)

	renamed := googleIdentity()
	renamed.DisplayName = "alice-renamed"

	account, err := rec.Reconcile(ctx, renamed)
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", account.Username)
}

func TestReconcileKeepsUsernameWhenNewNameTaken(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())
	ctx := context.Background()

	_, err := rec.RegisterLocal(ctx, "bob", "s3cretpass", "bob@example.com")
	require.NoError(t, err)

	_, err = rec.Reconcile(ctx, googleIdentity())
	require.NoError(t, err)

	// The provider now reports the name "bob", which another account holds.
	clash := googleIdentity()
	clash.DisplayName = "bob"

	account, err := rec.Reconcile(ctx, clash)
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
}

func TestRegisterLocal(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())
	ctx := context.Background()

	account, err := rec.RegisterLocal(ctx, "alice", "s3cretpass", "alice@example.com")
	require.NoError(t, err)

	assert.NotZero(t, account.ID)
	assert.Equal(t, auth.ProviderLocal, account.Provider)
	assert.Empty(t, account.ProviderID)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "s3cretpass", account.PasswordHash)
	assert.Equal(t, []string{auth.RoleUser}, account.Roles)
	assert.True(t, account.Enabled)
}

func TestRegisterLocalDuplicates(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())
	ctx := context.Background()

	_, err := rec.RegisterLocal(ctx, "alice", "s3cretpass", "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same username", "alice", "other@example.com"},
		{"same email", "other", "alice@example.com"},
		{"email case differs", "other", "ALICE@EXAMPLE.COM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rec.RegisterLocal(ctx, tt.username, "s3cretpass", tt.email)
			assert.ErrorIs(t, err, auth.ErrDuplicateIdentity)
		})
	}
}

func TestAuthenticateLocal(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())
	ctx := context.Background()

	created, err := rec.RegisterLocal(ctx, "alice", "s3cretpass", "alice@example.com")
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		account, err := rec.AuthenticateLocal(ctx, "alice", "s3cretpass")
		require.NoError(t, err)
		assert.Equal(t, created.ID, account.ID)
	})

	t.Run("by email", func(t *testing.T) {
		account, err := rec.AuthenticateLocal(ctx, "alice@example.com", "s3cretpass")
		require.NoError(t, err)
		assert.Equal(t, created.ID, account.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := rec.AuthenticateLocal(ctx, "alice", "wrongpass")
		assert.ErrorIs(t, err, auth.ErrInvalidCredential)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := rec.AuthenticateLocal(ctx, "nobody", "s3cretpass")
		assert.ErrorIs(t, err, auth.ErrInvalidCredential)
	})
}

// racingStore loses exactly one Save to a rival writer: the rival row
// lands first and the caller's insert fails with the uniqueness
// conflict the database would report.
type racingStore struct {
	*store.MemoryStore
	rival *auth.Account
	raced bool
}

func (s *racingStore) Save(ctx context.Context, account *auth.Account) error {
	if !s.raced {
		s.raced = true
		if err := s.MemoryStore.Save(ctx, s.rival); err != nil {
			return err
		}
		return store.ErrConflict
	}
	return s.MemoryStore.Save(ctx, account)
}

func TestReconcileRecoversFromCreateRace(t *testing.T) {
	rival := &auth.Account{
		Username:   "alice",
		Email:      "alice@example.com",
		Provider:   auth.ProviderGoogle,
		ProviderID: "google-123",
		Roles:      []string{auth.RoleUser},
		Enabled:    true,
	}
	accounts := &racingStore{MemoryStore: store.NewMemoryStore(), rival: rival}
	rec := reconciler.New(accounts)

	// The rival reconciliation wins the insert mid-flight; ours must
	// settle on the rival's account instead of failing or duplicating.
	account, err := rec.Reconcile(context.Background(), googleIdentity())
	require.NoError(t, err)
	assert.Equal(t, rival.ID, account.ID)

	canonical, err := accounts.FindByProviderID(context.Background(), auth.ProviderGoogle, "google-123")
	require.NoError(t, err)
	assert.Equal(t, rival.ID, canonical.ID)
}

func TestReconcileRecoversFromLinkRace(t *testing.T) {
	// The rival holds the same email but a different provider identity,
	// so the retry resolves through the email lookup.
	rival := &auth.Account{
		Username:   "alice",
		Email:      "alice@example.com",
		Provider:   auth.ProviderGithub,
		ProviderID: "github-777",
		Roles:      []string{auth.RoleUser},
		Enabled:    true,
	}
	accounts := &racingStore{MemoryStore: store.NewMemoryStore(), rival: rival}
	rec := reconciler.New(accounts)

	account, err := rec.Reconcile(context.Background(), googleIdentity())
	require.NoError(t, err)
	assert.Equal(t, rival.ID, account.ID)
}

func TestRegisterLocalLosesRaceToRivalSignup(t *testing.T) {
	rival := &auth.Account{
		Username: "alice",
		Email:    "alice@example.com",
		Provider: auth.ProviderLocal,
		Roles:    []string{auth.RoleUser},
		Enabled:  true,
	}
	accounts := &racingStore{MemoryStore: store.NewMemoryStore(), rival: rival}
	rec := reconciler.New(accounts)

	// Both existence checks pass before the rival lands, so the
	// conflict surfaces at the insert.
	_, err := rec.RegisterLocal(context.Background(), "alice", "s3cretpass", "alice@example.com")
	assert.ErrorIs(t, err, auth.ErrDuplicateIdentity)

	// Exactly one account exists and it is the rival's.
	account, err := accounts.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, rival.ID, account.ID)
}

func TestAuthenticateLocalRejectsProviderOnlyAccount(t *testing.T) {
	rec := reconciler.New(store.NewMemoryStore())
	ctx := context.Background()

	_, err := rec.Reconcile(ctx, googleIdentity())
	require.NoError(t, err)

	// No password hash exists, so any password must fail.
	_, err = rec.AuthenticateLocal(ctx, "alice", "")
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}
