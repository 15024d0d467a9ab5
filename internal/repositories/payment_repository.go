package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO payments(booking_id, amount, pay_date, mode, reference)
		 VALUES($1, $2, $3, $4, NULLIF($5, ''))
		 RETURNING id, created_at`,
		p.BookingID, p.Amount, p.Date, p.Mode, p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, booking_id, amount, pay_date, mode, COALESCE(reference, '') as reference, created_at
		 FROM payments WHERE id=$1`, id)

	var p models.Payment
	err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Date, &p.Mode, &p.Reference, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, booking_id, amount, pay_date, mode, COALESCE(reference, '') as reference, created_at
		 FROM payments WHERE booking_id=$1
		 ORDER BY pay_date DESC, id DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Date, &p.Mode, &p.Reference, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// Update corrects a payment entry in place. The caller records the prior
// amount in the audit log; the ledger keeps no reversal line.
func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE payments SET amount=$1, pay_date=$2, mode=$3, reference=NULLIF($4, '') WHERE id=$5`,
		p.Amount, p.Date, p.Mode, p.Reference, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SumByBooking is the amount collected from the customer for one booking.
func (r *PaymentRepository) SumByBooking(ctx context.Context, bookingID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id=$1`,
		bookingID).Scan(&total)
	return total, err
}

// TotalCollected sums all payments whose booking is not soft-deleted.
func (r *PaymentRepository) TotalCollected(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT COALESCE(SUM(p.amount), 0)
		 FROM payments p JOIN bookings ON p.booking_id = bookings.id
		 WHERE %s`, activeBookings)).Scan(&total)
	return total, err
}

// MonthlyTotalsSince buckets payment amounts per IST calendar month, keyed by
// month start, skipping payments on soft-deleted bookings.
func (r *PaymentRepository) MonthlyTotalsSince(ctx context.Context, cutoff time.Time) (map[time.Time]float64, error) {
	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT date_trunc('month', p.pay_date::timestamp) as month, SUM(p.amount)
		 FROM payments p JOIN bookings ON p.booking_id = bookings.id
		 WHERE %s AND p.pay_date >= $1
		 GROUP BY month`, activeBookings),
		cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[time.Time]float64)
	for rows.Next() {
		var month time.Time
		var sum float64
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, err
		}
		totals[month] = sum
	}
	return totals, rows.Err()
}
