package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	DB *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{DB: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO bookings(customer_id, title, travel_date, duration, adults, kids, total_amount, status)
		 VALUES($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		b.CustomerID, b.Title, b.TravelDate, b.Duration, b.Adults, b.Kids, b.TotalAmount, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) Get(ctx context.Context, id int) (*models.Booking, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, customer_id, title, travel_date, COALESCE(duration, '') as duration,
		        adults, kids, total_amount, status, is_deleted, created_at, updated_at
		 FROM bookings WHERE id=$1`, id)

	var b models.Booking
	err := row.Scan(&b.ID, &b.CustomerID, &b.Title, &b.TravelDate, &b.Duration,
		&b.Adults, &b.Kids, &b.TotalAmount, &b.Status, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns non-deleted bookings with their ledger roll-ups, newest first.
func (r *BookingRepository) List(ctx context.Context) ([]*models.BookingWithTotals, error) {
	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT b.id, b.customer_id, b.title, b.travel_date, COALESCE(b.duration, '') as duration,
		        b.adults, b.kids, b.total_amount, b.status, b.is_deleted, b.created_at, b.updated_at,
		        c.name as customer_name,
		        COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.booking_id = b.id), 0) as amount_collected,
		        COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.booking_id = b.id), 0) as amount_spent
		 FROM bookings b
		 JOIN customers c ON b.customer_id = c.id
		 WHERE %s
		 ORDER BY b.created_at DESC`, activeBookings))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.BookingWithTotals
	for rows.Next() {
		var b models.BookingWithTotals
		err := rows.Scan(&b.ID, &b.CustomerID, &b.Title, &b.TravelDate, &b.Duration,
			&b.Adults, &b.Kids, &b.TotalAmount, &b.Status, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt,
			&b.CustomerName, &b.AmountCollected, &b.AmountSpent)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Booking, error) {
	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT id, customer_id, title, travel_date, COALESCE(duration, '') as duration,
		        adults, kids, total_amount, status, is_deleted, created_at, updated_at
		 FROM bookings WHERE customer_id=$1 AND %s
		 ORDER BY created_at DESC`, activeBookings), customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(&b.ID, &b.CustomerID, &b.Title, &b.TravelDate, &b.Duration,
			&b.Adults, &b.Kids, &b.TotalAmount, &b.Status, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, b *models.Booking) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bookings SET title=$1, travel_date=$2, duration=NULLIF($3, ''), adults=$4, kids=$5,
		        total_amount=$6, status=$7, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$8 AND is_deleted=FALSE`,
		b.Title, b.TravelDate, b.Duration, b.Adults, b.Kids, b.TotalAmount, b.Status, b.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *BookingRepository) SoftDelete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bookings SET is_deleted=TRUE, updated_at=CURRENT_TIMESTAMP WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountCreatedSince counts non-deleted bookings created at or after the cutoff.
func (r *BookingRepository) CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM bookings WHERE %s AND created_at >= $1`, activeBookings),
		cutoff).Scan(&count)
	return count, err
}

// CountConfirmed counts non-deleted CONFIRMED bookings (conversion numerator).
func (r *BookingRepository) CountConfirmed(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM bookings WHERE %s`, confirmedBookings)).Scan(&count)
	return count, err
}

// ConfirmedTotalAmount sums the agreed trip price over non-deleted CONFIRMED
// bookings. Together with PaymentRepository.TotalCollected this yields the
// portfolio-level "payment balance with customers".
func (r *BookingRepository) ConfirmedTotalAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE %s`, confirmedBookings)).Scan(&total)
	return total, err
}
