package models

import "time"

// ExpenseCategory classifies vendor spend on a trip.
type ExpenseCategory string

const (
	ExpenseHotel     ExpenseCategory = "HOTEL"
	ExpenseTransport ExpenseCategory = "TRANSPORT"
	ExpenseOther     ExpenseCategory = "OTHER"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseHotel, ExpenseTransport, ExpenseOther:
		return true
	}
	return false
}

// Expense is money paid out to a vendor for a booking. TotalCost is the
// vendor's full bill when known; Amount is what has actually been paid so far.
type Expense struct {
	ID        int             `json:"id"`
	BookingID int             `json:"booking_id"`
	Title     string          `json:"title"`
	Category  ExpenseCategory `json:"category"`
	TotalCost *float64        `json:"total_cost,omitempty"`
	Amount    float64         `json:"amount"`
	Date      time.Time       `json:"date"`
	Mode      PaymentMode     `json:"mode"`
	CreatedAt time.Time       `json:"created_at"`
}

// Balance is the amount still owed to the vendor. The second return is false
// when the vendor's full bill is unknown, in which case no balance applies.
func (e *Expense) Balance() (float64, bool) {
	if e.TotalCost == nil {
		return 0, false
	}
	return *e.TotalCost - e.Amount, true
}

// CreateExpenseRequest appends an expense to a booking's ledger.
type CreateExpenseRequest struct {
	Title     string          `json:"title"`
	Category  ExpenseCategory `json:"category"`
	TotalCost *float64        `json:"total_cost"`
	Amount    float64         `json:"amount"`
	Date      string          `json:"date"`
	Mode      PaymentMode     `json:"mode"`
}

// UpdateExpenseRequest corrects a prior expense entry in place.
type UpdateExpenseRequest struct {
	Title     string          `json:"title"`
	Category  ExpenseCategory `json:"category"`
	TotalCost *float64        `json:"total_cost"`
	Amount    float64         `json:"amount"`
	Date      string          `json:"date"`
	Mode      PaymentMode     `json:"mode"`
}
