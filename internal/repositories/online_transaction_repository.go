package repositories

import (
	"context"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, t *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(booking_id, order_id, amount, fee, status)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.BookingID, t.OrderID, t.Amount, t.Fee, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, booking_id, order_id, COALESCE(razorpay_payment_id, '') as razorpay_payment_id,
		        amount, fee, status, created_at, updated_at
		 FROM online_transactions WHERE order_id=$1`, orderID)

	var t models.OnlineTransaction
	err := row.Scan(&t.ID, &t.BookingID, &t.OrderID, &t.RazorpayPaymentID,
		&t.Amount, &t.Fee, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkCaptured flips a transaction to captured exactly once; the boolean
// reports whether this call won, so a replayed webhook cannot double-post
// the payment to the ledger.
func (r *OnlineTransactionRepository) MarkCaptured(ctx context.Context, orderID, paymentID string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
		 SET status='captured', razorpay_payment_id=$2, updated_at=CURRENT_TIMESTAMP
		 WHERE order_id=$1 AND status='created'`, orderID, paymentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OnlineTransactionRepository) MarkFailed(ctx context.Context, orderID string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status='failed', updated_at=CURRENT_TIMESTAMP WHERE order_id=$1`, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *OnlineTransactionRepository) ListByBooking(ctx context.Context, bookingID int) ([]models.OnlineTransaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, booking_id, order_id, COALESCE(razorpay_payment_id, '') as razorpay_payment_id,
		        amount, fee, status, created_at, updated_at
		 FROM online_transactions WHERE booking_id=$1 ORDER BY created_at DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []models.OnlineTransaction
	for rows.Next() {
		var t models.OnlineTransaction
		if err := rows.Scan(&t.ID, &t.BookingID, &t.OrderID, &t.RazorpayPaymentID,
			&t.Amount, &t.Fee, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
