package repositories

import (
	"context"
	"fmt"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversionTx is the unit of work for turning a lead into a booking.
// All writes go through one transaction: either the customer, booking,
// initial payment and pipeline update all persist, or none do.
type ConversionTx interface {
	GetCustomer(ctx context.Context, id int) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	CreateBooking(ctx context.Context, b *models.Booking) error
	CreatePayment(ctx context.Context, p *models.Payment) error
	MarkInquiryBooked(ctx context.Context, inquiryID int) error
}

// ConversionStore runs a conversion unit of work transactionally.
type ConversionStore interface {
	WithinTx(ctx context.Context, fn func(tx ConversionTx) error) error
}

type ConversionRepository struct {
	DB *pgxpool.Pool
}

func NewConversionRepository(db *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{DB: db}
}

// WithinTx opens a transaction, runs fn against it, and commits only if fn
// succeeds. Any error (including the payment insert failing after the
// booking insert) rolls the whole conversion back.
func (r *ConversionRepository) WithinTx(ctx context.Context, fn func(tx ConversionTx) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&conversionTx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type conversionTx struct {
	tx pgx.Tx
}

func (c *conversionTx) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	row := c.tx.QueryRow(ctx,
		`SELECT id, name, phone, COALESCE(email, '') as email, COALESCE(address, '') as address,
		        COALESCE(notes, '') as notes, created_at, updated_at
		 FROM customers WHERE id=$1`, id)

	var customer models.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Email,
		&customer.Address, &customer.Notes, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *conversionTx) CreateCustomer(ctx context.Context, cu *models.Customer) error {
	return c.tx.QueryRow(ctx,
		`INSERT INTO customers(name, phone, email, address, notes)
		 VALUES($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		 RETURNING id, created_at, updated_at`,
		cu.Name, cu.Phone, cu.Email, cu.Address, cu.Notes,
	).Scan(&cu.ID, &cu.CreatedAt, &cu.UpdatedAt)
}

func (c *conversionTx) CreateBooking(ctx context.Context, b *models.Booking) error {
	return c.tx.QueryRow(ctx,
		`INSERT INTO bookings(customer_id, title, travel_date, duration, adults, kids, total_amount, status)
		 VALUES($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		b.CustomerID, b.Title, b.TravelDate, b.Duration, b.Adults, b.Kids, b.TotalAmount, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (c *conversionTx) CreatePayment(ctx context.Context, p *models.Payment) error {
	return c.tx.QueryRow(ctx,
		`INSERT INTO payments(booking_id, amount, pay_date, mode, reference)
		 VALUES($1, $2, $3, $4, NULLIF($5, ''))
		 RETURNING id, created_at`,
		p.BookingID, p.Amount, p.Date, p.Mode, p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
}

func (c *conversionTx) MarkInquiryBooked(ctx context.Context, inquiryID int) error {
	_, err := c.tx.Exec(ctx,
		fmt.Sprintf(`UPDATE inquiries SET status=$1, is_read=TRUE WHERE id=$2 AND %s`, activeInquiries),
		models.StatusBooked, inquiryID)
	return err
}
