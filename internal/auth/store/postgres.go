package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/db"
)

const uniqueViolation = "23505"

const accountColumns = `
	id, username, email, COALESCE(password_hash, ''),
	provider, COALESCE(provider_id, ''), roles, enabled,
	created_at, updated_at`

// PostgresStore is the canonical account store. The unique indexes on
// username, LOWER(email), and (provider, provider_id) enforce the
// identity invariants; a racing duplicate create fails here with
// ErrConflict rather than producing two accounts.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*auth.Account, error) {
	return s.findOne(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE username = $1
	`, username)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return s.findOne(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`, email)
}

func (s *PostgresStore) FindByProviderID(ctx context.Context, provider auth.Provider, providerID string) (*auth.Account, error) {
	return s.findOne(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE provider = $1
		  AND provider_id = $2
	`, string(provider), providerID)
}

func (s *PostgresStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounts WHERE username = $1
		)
	`, username).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1)
		)
	`, email).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Save(ctx context.Context, account *auth.Account) error {
	if account.ID == 0 {
		return s.insert(ctx, account)
	}
	return s.update(ctx, account)
}

func (s *PostgresStore) insert(ctx context.Context, a *auth.Account) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts
			(username, email, password_hash, provider, provider_id, roles, enabled)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7)
		RETURNING id, created_at, updated_at
	`,
		a.Username,
		a.Email,
		a.PasswordHash,
		string(a.Provider),
		a.ProviderID,
		pq.Array(a.Roles),
		a.Enabled,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	return mapConflict(err)
}

func (s *PostgresStore) update(ctx context.Context, a *auth.Account) error {
	err := s.db.QueryRowContext(ctx, `
		UPDATE accounts
		SET username = $2,
		    email = $3,
		    password_hash = NULLIF($4, ''),
		    provider = $5,
		    provider_id = NULLIF($6, ''),
		    roles = $7,
		    enabled = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		a.ID,
		a.Username,
		a.Email,
		a.PasswordHash,
		string(a.Provider),
		a.ProviderID,
		pq.Array(a.Roles),
		a.Enabled,
	).Scan(&a.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return mapConflict(err)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*auth.Account, error) {
	var (
		a        auth.Account
		provider string
	)

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&provider,
		&a.ProviderID,
		pq.Array(&a.Roles),
		&a.Enabled,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a.Provider = auth.Provider(provider)
	return &a, nil
}

func mapConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}
