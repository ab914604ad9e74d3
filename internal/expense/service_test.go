package expense

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

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	nextID int64
	rows   map[int64]Expense
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: make(map[int64]Expense)}
}

func (r *fakeRepo) Insert(_ context.Context, e *Expense) error {
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.rows[e.ID] = *e
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*Expense, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID int64, _ Filter, _ Sort) ([]Expense, error) {
	var out []Expense
	for _, e := range r.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, e *Expense) error {
	if _, ok := r.rows[e.ID]; !ok {
		return ErrNotFound
	}
	e.UpdatedAt = time.Now()
	r.rows[e.ID] = *e
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) SumByUser(_ context.Context, userID int64, start, end *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.rows {
		if e.UserID != userID {
			continue
		}
		if start != nil && e.DateOfExpense.Before(*start) {
			continue
		}
		if end != nil && e.DateOfExpense.After(*end) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}

type fixture struct {
	service *Service
	repo    *fakeRepo
	alice   principal.Principal
	bob     principal.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	accounts := store.NewMemoryStore()
	for _, name := range []string{"alice", "bob"} {
		err := accounts.Save(context.Background(), &auth.Account{
			Username: name,
			Email:    name + "@example.com",
			Provider: auth.ProviderLocal,
			Roles:    []string{auth.RoleUser},
			Enabled:  true,
		})
		require.NoError(t, err)
	}

	repo := newFakeRepo()
	return &fixture{
		service: NewService(repo, principal.NewGuard(accounts)),
		repo:    repo,
		alice:   principal.Principal{Username: "alice", Authenticated: true},
		bob:     principal.Principal{Username: "bob", Authenticated: true},
	}
}

func sampleExpense() Expense {
	return Expense{
		Description:   "groceries",
		Category:      CategoryPersonal,
		Amount:        decimal.NewFromInt(42),
		DateOfExpense: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddAssignsOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := sampleExpense()
	in.ID = 99     // client-supplied ids are ignored
	in.UserID = 99 // so is any claimed owner

	created, err := f.service.Add(ctx, f.alice, in)
	require.NoError(t, err)

	assert.NotEqual(t, int64(99), created.ID)
	assert.NotEqual(t, int64(99), created.UserID)
	assert.Equal(t, "groceries", created.Description)

	stored, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, stored.UserID)
}

func TestAddRejectsAnonymous(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Add(context.Background(), principal.Anonymous, sampleExpense())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAddRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		in := sampleExpense()
		in.Amount = amount
		_, err := f.service.Add(ctx, f.alice, in)
		assert.ErrorIs(t, err, errInvalidAmount)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Add(ctx, f.alice, sampleExpense())
	require.NoError(t, err)

	t.Run("owner reads", func(t *testing.T) {
		got, err := f.service.Get(ctx, f.alice, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		_, err := f.service.Get(ctx, f.bob, created.ID)
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("anonymous unauthenticated", func(t *testing.T) {
		_, err := f.service.Get(ctx, principal.Anonymous, created.ID)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("missing row", func(t *testing.T) {
		_, err := f.service.Get(ctx, f.alice, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Add(ctx, f.alice, sampleExpense())
	require.NoError(t, err)

	in := sampleExpense()
	in.Description = "rent"
	in.Category = CategorySurvival
	in.Amount = decimal.NewFromInt(900)

	updated, err := f.service.Update(ctx, f.alice, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "rent", updated.Description)
	assert.Equal(t, CategorySurvival, updated.Category)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, created.UserID, updated.UserID)

	t.Run("other user forbidden", func(t *testing.T) {
		_, err := f.service.Update(ctx, f.bob, created.ID, in)
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Add(ctx, f.alice, sampleExpense())
	require.NoError(t, err)

	t.Run("other user forbidden, row survives", func(t *testing.T) {
		err := f.service.Delete(ctx, f.bob, created.ID)
		assert.ErrorIs(t, err, auth.ErrForbidden)

		_, err = f.repo.FindByID(ctx, created.ID)
		assert.NoError(t, err)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, f.service.Delete(ctx, f.alice, created.ID))

		_, err := f.service.Get(ctx, f.alice, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListScopedToPrincipal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Add(ctx, f.alice, sampleExpense())
	require.NoError(t, err)

	other := sampleExpense()
	other.Description = "cinema"
	_, err = f.service.Add(ctx, f.bob, other)
	require.NoError(t, err)

	list, err := f.service.List(ctx, f.alice, Filter{}, Sort{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "groceries", list[0].Description)
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"PERSONAL", "SURVIVAL_LIVELIHOOD", "INVESTMENT"} {
		got, err := ParseCategory(valid)
		require.NoError(t, err)
		assert.Equal(t, Category(valid), got)
	}

	_, err := ParseCategory("personal")
	assert.Error(t, err)
	_, err = ParseCategory("")
	assert.Error(t, err)
}
