package income

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/db"
)

type PostgresRepository struct {
	db *db.DB
}

func NewPostgresRepository(db *db.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const incomeColumns = `
	id, user_id, description, source, amount, date_of_income,
	created_at, updated_at`

func (r *PostgresRepository) Insert(ctx context.Context, in *Income) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO incomes (user_id, description, source, amount, date_of_income)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`,
		in.UserID,
		in.Description,
		string(in.Source),
		in.Amount,
		in.DateOfIncome,
	).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Income, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+incomeColumns+`
		FROM incomes
		WHERE id = $1
	`, id)

	in, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return in, err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, f Filter, s Sort) ([]Income, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + incomeColumns + ` FROM incomes WHERE user_id = $1`)
	args := []any{userID}

	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&b, " AND "+cond, len(args))
	}

	if f.Source != nil {
		appendCond("source = $%d", string(*f.Source))
	}
	if f.StartDate != nil {
		appendCond("date_of_income >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		appendCond("date_of_income <= $%d", *f.EndDate)
	}
	if f.MinAmount != nil {
		appendCond("amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		appendCond("amount <= $%d", *f.MaxAmount)
	}

	b.WriteString(" ORDER BY " + orderClause(s))

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Income
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, in *Income) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE incomes
		SET description = $2,
		    source = $3,
		    amount = $4,
		    date_of_income = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		in.ID,
		in.Description,
		string(in.Source),
		in.Amount,
		in.DateOfIncome,
	).Scan(&in.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SumByUser(ctx context.Context, userID int64, start, end *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE user_id = $1`
	args := []any{userID}

	if start != nil && end != nil {
		query += ` AND date_of_income BETWEEN $2 AND $3`
		args = append(args, *start, *end)
	}

	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

func orderClause(s Sort) string {
	col := "id"
	switch s.By {
	case "amount":
		col = "amount"
	case "date":
		col = "date_of_income"
	case "source":
		col = "source"
	}
	if s.Desc {
		return col + " DESC"
	}
	return col + " ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(row rowScanner) (*Income, error) {
	var (
		in     Income
		source string
	)
	err := row.Scan(
		&in.ID,
		&in.UserID,
		&in.Description,
		&source,
		&in.Amount,
		&in.DateOfIncome,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	in.Source = Source(source)
	return &in, nil
}
