package expense

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

const expenseColumns = `
	id, user_id, description, category, amount, date_of_expense,
	created_at, updated_at`

func (r *PostgresRepository) Insert(ctx context.Context, e *Expense) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (user_id, description, category, amount, date_of_expense)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`,
		e.UserID,
		e.Description,
		string(e.Category),
		e.Amount,
		e.DateOfExpense,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = $1
	`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, f Filter, s Sort) ([]Expense, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`)
	args := []any{userID}

	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&b, " AND "+cond, len(args))
	}

	if f.Category != nil {
		appendCond("category = $%d", string(*f.Category))
	}
	if f.StartDate != nil {
		appendCond("date_of_expense >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		appendCond("date_of_expense <= $%d", *f.EndDate)
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

	var out []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, e *Expense) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE expenses
		SET description = $2,
		    category = $3,
		    amount = $4,
		    date_of_expense = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		e.ID,
		e.Description,
		string(e.Category),
		e.Amount,
		e.DateOfExpense,
	).Scan(&e.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SumByUser(ctx context.Context, userID int64, start, end *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`
	args := []any{userID}

	if start != nil && end != nil {
		query += ` AND date_of_expense BETWEEN $2 AND $3`
		args = append(args, *start, *end)
	}

	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

// orderClause whitelists sortable columns; arbitrary input cannot reach
// the SQL text.
func orderClause(s Sort) string {
	col := "id"
	switch s.By {
	case "amount":
		col = "amount"
	case "date":
		col = "date_of_expense"
	case "category":
		col = "category"
	}
	if s.Desc {
		return col + " DESC"
	}
	return col + " ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*Expense, error) {
	var (
		e        Expense
		category string
	)
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Description,
		&category,
		&e.Amount,
		&e.DateOfExpense,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Category = Category(category)
	return &e, nil
}
