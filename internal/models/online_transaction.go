package models

import "time"

// OnlineTransaction tracks a Razorpay order through its lifecycle. A captured
// transaction is what appends the UPI Payment row to the booking's ledger.
type OnlineTransaction struct {
	ID                int       `json:"id"`
	BookingID         int       `json:"booking_id"`
	OrderID           string    `json:"order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	Amount            float64   `json:"amount"`
	Fee               float64   `json:"fee"`
	Status            string    `json:"status"` // created, captured, failed
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateOnlinePaymentRequest asks for a payment link/order against a booking.
type CreateOnlinePaymentRequest struct {
	BookingID int     `json:"booking_id"`
	Amount    float64 `json:"amount"`
}

// CreateOrderResponse is returned to the checkout frontend.
type CreateOrderResponse struct {
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	Currency  string  `json:"currency"`
	KeyID     string  `json:"key_id"`
	BookingID int     `json:"booking_id"`
}
