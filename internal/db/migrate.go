package db

import (
	"context"
	"database/sql"
)

const schemaMigration = `
CREATE TABLE IF NOT EXISTS accounts (
    id bigserial PRIMARY KEY,
    username text NOT NULL,
    email text NOT NULL,
    password_hash text,
    provider text NOT NULL DEFAULT 'LOCAL',
    provider_id text,
    roles text[] NOT NULL DEFAULT '{USER}',
    enabled boolean NOT NULL DEFAULT true,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS accounts_username_unique
ON accounts (username);

CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_lower_unique
ON accounts (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS accounts_provider_unique
ON accounts (provider, provider_id)
WHERE provider_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS expenses (
    id bigserial PRIMARY KEY,
    user_id bigint NOT NULL REFERENCES accounts(id),
    description text NOT NULL,
    category text NOT NULL,
    amount numeric(19,2) NOT NULL,
    date_of_expense date NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS expenses_user_id_idx
ON expenses (user_id);

CREATE TABLE IF NOT EXISTS incomes (
    id bigserial PRIMARY KEY,
    user_id bigint NOT NULL REFERENCES accounts(id),
    description text NOT NULL,
    source text NOT NULL,
    amount numeric(19,2) NOT NULL,
    date_of_income date NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS incomes_user_id_idx
ON incomes (user_id);
`

// RunMigration applies the idempotent startup schema. The unique indexes
// on accounts carry the identity invariants; nothing above the store
// takes locks.
func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaMigration)
	return err
}
