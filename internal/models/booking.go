package models

import "time"

// BookingStatus tracks whether a trip is confirmed. Only CONFIRMED bookings
// count toward the portfolio payment balance and the conversion rate.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingTentative BookingStatus = "TENTATIVE"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingTentative, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking is a confirmed (or in-progress) trip owned by exactly one customer.
type Booking struct {
	ID          int           `json:"id"`
	CustomerID  int           `json:"customer_id"`
	Title       string        `json:"title"`
	TravelDate  *time.Time    `json:"travel_date,omitempty"`
	Duration    string        `json:"duration,omitempty"`
	Adults      int           `json:"adults"`
	Kids        int           `json:"kids"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	IsDeleted   bool          `json:"is_deleted"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingWithTotals carries the booking plus its ledger roll-ups for list views.
type BookingWithTotals struct {
	Booking
	CustomerName    string  `json:"customer_name"`
	AmountCollected float64 `json:"amount_collected"`
	AmountSpent     float64 `json:"amount_spent"`
}

// NewCustomerInput is the inline-customer variant of the conversion payload.
type NewCustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ConvertLeadRequest materializes a booking (and optionally a customer and an
// initial payment) from operator-entered trip data.
type ConvertLeadRequest struct {
	InquiryID   *int              `json:"inquiry_id"`
	CustomerID  *int              `json:"customer_id"`
	NewCustomer *NewCustomerInput `json:"new_customer"`

	Title       string  `json:"title"`
	TravelDate  string  `json:"travel_date"`
	Duration    string  `json:"duration"`
	Adults      int     `json:"adults"`
	Kids        int     `json:"kids"`
	TotalAmount float64 `json:"total_amount"`

	InitialPayment     float64     `json:"initial_payment"`
	InitialPaymentMode PaymentMode `json:"initial_payment_mode"`
}

// UpdateBookingRequest edits booking fields in place.
type UpdateBookingRequest struct {
	Title       string        `json:"title"`
	TravelDate  string        `json:"travel_date"`
	Duration    string        `json:"duration"`
	Adults      int           `json:"adults"`
	Kids        int           `json:"kids"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
}
