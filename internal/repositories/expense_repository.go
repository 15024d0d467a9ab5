package repositories

import (
	"context"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO expenses(booking_id, title, category, total_cost, amount, pay_date, mode)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		e.BookingID, e.Title, e.Category, e.TotalCost, e.Amount, e.Date, e.Mode,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *ExpenseRepository) Get(ctx context.Context, id int) (*models.Expense, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, booking_id, title, category, total_cost, amount, pay_date, mode, created_at
		 FROM expenses WHERE id=$1`, id)

	var e models.Expense
	err := row.Scan(&e.ID, &e.BookingID, &e.Title, &e.Category, &e.TotalCost, &e.Amount, &e.Date, &e.Mode, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) ListByBooking(ctx context.Context, bookingID int) ([]*models.Expense, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, booking_id, title, category, total_cost, amount, pay_date, mode, created_at
		 FROM expenses WHERE booking_id=$1
		 ORDER BY pay_date DESC, id DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Title, &e.Category, &e.TotalCost, &e.Amount, &e.Date, &e.Mode, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE expenses SET title=$1, category=$2, total_cost=$3, amount=$4, pay_date=$5, mode=$6 WHERE id=$7`,
		e.Title, e.Category, e.TotalCost, e.Amount, e.Date, e.Mode, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SumByBooking is the amount spent on vendors for one booking.
func (r *ExpenseRepository) SumByBooking(ctx context.Context, bookingID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE booking_id=$1`,
		bookingID).Scan(&total)
	return total, err
}
