package models

import "time"

// PaymentMode is how money changed hands.
type PaymentMode string

const (
	ModeUPI          PaymentMode = "UPI"
	ModeCash         PaymentMode = "CASH"
	ModeBankTransfer PaymentMode = "BANK_TRANSFER"
	ModeCheque       PaymentMode = "CHEQUE"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case ModeUPI, ModeCash, ModeBankTransfer, ModeCheque:
		return true
	}
	return false
}

// Payment is money received from the customer against a booking.
type Payment struct {
	ID        int         `json:"id"`
	BookingID int         `json:"booking_id"`
	Amount    float64     `json:"amount"`
	Date      time.Time   `json:"date"`
	Mode      PaymentMode `json:"mode"`
	Reference string      `json:"reference,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreatePaymentRequest appends a payment to a booking's ledger.
type CreatePaymentRequest struct {
	Amount    float64     `json:"amount"`
	Date      string      `json:"date"`
	Mode      PaymentMode `json:"mode"`
	Reference string      `json:"reference"`
}

// UpdatePaymentRequest corrects a prior payment entry in place.
type UpdatePaymentRequest struct {
	Amount    float64     `json:"amount"`
	Date      string      `json:"date"`
	Mode      PaymentMode `json:"mode"`
	Reference string      `json:"reference"`
}
