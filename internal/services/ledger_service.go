package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-backend/internal/cache"
	"travel-backend/internal/models"
	"travel-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
)

// BookingStore is the booking persistence surface of the ledger.
type BookingStore interface {
	Get(ctx context.Context, id int) (*models.Booking, error)
	List(ctx context.Context) ([]*models.BookingWithTotals, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	SoftDelete(ctx context.Context, id int) error
	ConfirmedTotalAmount(ctx context.Context) (float64, error)
}

// PaymentStore is the payment-side persistence surface.
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id int) (*models.Payment, error)
	ListByBooking(ctx context.Context, bookingID int) ([]*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	SumByBooking(ctx context.Context, bookingID int) (float64, error)
	TotalCollected(ctx context.Context) (float64, error)
}

// ExpenseStore is the expense-side persistence surface.
type ExpenseStore interface {
	Create(ctx context.Context, e *models.Expense) error
	Get(ctx context.Context, id int) (*models.Expense, error)
	ListByBooking(ctx context.Context, bookingID int) ([]*models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id int) error
	SumByBooking(ctx context.Context, bookingID int) (float64, error)
}

// BookingDetail is a booking with its full ledger.
type BookingDetail struct {
	Booking         *models.Booking   `json:"booking"`
	Payments        []*models.Payment `json:"payments"`
	Expenses        []*models.Expense `json:"expenses"`
	AmountCollected float64           `json:"amount_collected"`
	AmountSpent     float64           `json:"amount_spent"`
	CustomerBalance float64           `json:"customer_balance"` // total_amount - collected
}

// LedgerService is the booking financial ledger: trip records plus the
// money collected from customers and paid out to vendors.
type LedgerService struct {
	bookings BookingStore
	payments PaymentStore
	expenses ExpenseStore
	audit    AuditWriter
	now      func() time.Time
}

func NewLedgerService(bookings BookingStore, payments PaymentStore, expenses ExpenseStore, audit AuditWriter) *LedgerService {
	return &LedgerService{
		bookings: bookings,
		payments: payments,
		expenses: expenses,
		audit:    audit,
		now:      timeutil.Now,
	}
}

func (s *LedgerService) ListBookings(ctx context.Context) ([]*models.BookingWithTotals, error) {
	return s.bookings.List(ctx)
}

func (s *LedgerService) ListBookingsByCustomer(ctx context.Context, customerID int) ([]*models.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

// GetBookingDetail loads one booking with its complete ledger and balances.
func (s *LedgerService) GetBookingDetail(ctx context.Context, id int) (*BookingDetail, error) {
	booking, err := s.liveBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var collected, spent float64
	for _, p := range payments {
		collected += p.Amount
	}
	for _, e := range expenses {
		spent += e.Amount
	}

	return &BookingDetail{
		Booking:         booking,
		Payments:        payments,
		Expenses:        expenses,
		AmountCollected: collected,
		AmountSpent:     spent,
		CustomerBalance: booking.TotalAmount - collected,
	}, nil
}

func (s *LedgerService) UpdateBooking(ctx context.Context, id int, req *models.UpdateBookingRequest, actor string) (*models.Booking, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidField("title", "trip title is required")
	}
	if req.TotalAmount < 0 {
		return nil, invalidField("total_amount", "total amount cannot be negative")
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, invalidField("status", fmt.Sprintf("unknown booking status %q", req.Status))
	}

	booking, err := s.liveBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.Title = strings.TrimSpace(req.Title)
	booking.Duration = strings.TrimSpace(req.Duration)
	booking.Adults = req.Adults
	booking.Kids = req.Kids
	booking.TotalAmount = req.TotalAmount
	if req.Status != "" {
		booking.Status = req.Status
	}

	booking.TravelDate = nil
	if req.TravelDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.TravelDate)
		if err != nil {
			return nil, invalidField("travel_date", "travel date must be YYYY-MM-DD")
		}
		booking.TravelDate = &d
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, actor, "booking.update", "booking", id, "")
	cache.InvalidateBookingCaches(ctx)
	return booking, nil
}

func (s *LedgerService) SoftDeleteBooking(ctx context.Context, id int, actor string) error {
	err := s.bookings.SoftDelete(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	recordAudit(ctx, s.audit, actor, "booking.trash", "booking", id, "")
	cache.InvalidateBookingCaches(ctx)
	return nil
}

// AddPayment appends a customer payment to the booking's ledger.
func (s *LedgerService) AddPayment(ctx context.Context, bookingID int, req *models.CreatePaymentRequest, actor string) (*models.Payment, error) {
	if req.Amount < 0 {
		return nil, invalidField("amount", "payment amount cannot be negative")
	}
	if req.Mode == "" {
		req.Mode = models.ModeCash
	}
	if !req.Mode.Valid() {
		return nil, invalidField("mode", fmt.Sprintf("unknown payment mode %q", req.Mode))
	}

	if _, err := s.liveBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	date, err := s.entryDate(req.Date)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		BookingID: bookingID,
		Amount:    req.Amount,
		Date:      date,
		Mode:      req.Mode,
		Reference: strings.TrimSpace(req.Reference),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, actor, "payment.create", "payment", payment.ID,
		fmt.Sprintf("booking %d, %.2f via %s", bookingID, payment.Amount, payment.Mode))
	cache.InvalidateBookingCaches(ctx)
	return payment, nil
}

// UpdatePayment corrects a payment entry in place. The prior amount goes to
// the audit trail since the ledger itself keeps no reversal line.
func (s *LedgerService) UpdatePayment(ctx context.Context, id int, req *models.UpdatePaymentRequest, actor string) (*models.Payment, error) {
	if req.Amount < 0 {
		return nil, invalidField("amount", "payment amount cannot be negative")
	}
	if !req.Mode.Valid() {
		return nil, invalidField("mode", fmt.Sprintf("unknown payment mode %q", req.Mode))
	}

	payment, err := s.payments.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	priorAmount := payment.Amount

	date, err := s.entryDate(req.Date)
	if err != nil {
		return nil, err
	}

	payment.Amount = req.Amount
	payment.Date = date
	payment.Mode = req.Mode
	payment.Reference = strings.TrimSpace(req.Reference)

	if err := s.payments.Update(ctx, payment); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, actor, "payment.update", "payment", id,
		fmt.Sprintf("amount %.2f -> %.2f", priorAmount, payment.Amount))
	cache.InvalidateBookingCaches(ctx)
	return payment, nil
}

// AddExpense appends a vendor expense to the booking's ledger.
func (s *LedgerService) AddExpense(ctx context.Context, bookingID int, req *models.CreateExpenseRequest, actor string) (*models.Expense, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidField("title", "expense title is required")
	}
	if req.Amount < 0 {
		return nil, invalidField("amount", "expense amount cannot be negative")
	}
	if req.TotalCost != nil && *req.TotalCost < 0 {
		return nil, invalidField("total_cost", "total cost cannot be negative")
	}
	if req.Category == "" {
		req.Category = models.ExpenseOther
	}
	if !req.Category.Valid() {
		return nil, invalidField("category", fmt.Sprintf("unknown expense category %q", req.Category))
	}
	if req.Mode == "" {
		req.Mode = models.ModeCash
	}
	if !req.Mode.Valid() {
		return nil, invalidField("mode", fmt.Sprintf("unknown payment mode %q", req.Mode))
	}

	if _, err := s.liveBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	date, err := s.entryDate(req.Date)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		BookingID: bookingID,
		Title:     strings.TrimSpace(req.Title),
		Category:  req.Category,
		TotalCost: req.TotalCost,
		Amount:    req.Amount,
		Date:      date,
		Mode:      req.Mode,
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, actor, "expense.create", "expense", expense.ID,
		fmt.Sprintf("booking %d, %.2f for %s", bookingID, expense.Amount, expense.Title))
	cache.InvalidateBookingCaches(ctx)
	return expense, nil
}

func (s *LedgerService) UpdateExpense(ctx context.Context, id int, req *models.UpdateExpenseRequest, actor string) (*models.Expense, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidField("title", "expense title is required")
	}
	if req.Amount < 0 {
		return nil, invalidField("amount", "expense amount cannot be negative")
	}
	if req.TotalCost != nil && *req.TotalCost < 0 {
		return nil, invalidField("total_cost", "total cost cannot be negative")
	}
	if !req.Category.Valid() {
		return nil, invalidField("category", fmt.Sprintf("unknown expense category %q", req.Category))
	}
	if !req.Mode.Valid() {
		return nil, invalidField("mode", fmt.Sprintf("unknown payment mode %q", req.Mode))
	}

	expense, err := s.expenses.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	priorAmount := expense.Amount

	date, err := s.entryDate(req.Date)
	if err != nil {
		return nil, err
	}

	expense.Title = strings.TrimSpace(req.Title)
	expense.Category = req.Category
	expense.TotalCost = req.TotalCost
	expense.Amount = req.Amount
	expense.Date = date
	expense.Mode = req.Mode

	if err := s.expenses.Update(ctx, expense); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, actor, "expense.update", "expense", id,
		fmt.Sprintf("amount %.2f -> %.2f", priorAmount, expense.Amount))
	cache.InvalidateBookingCaches(ctx)
	return expense, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id int, actor string) error {
	expense, err := s.expenses.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.expenses.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	recordAudit(ctx, s.audit, actor, "expense.delete", "expense", id,
		fmt.Sprintf("booking %d, was %.2f", expense.BookingID, expense.Amount))
	cache.InvalidateBookingCaches(ctx)
	return nil
}

// PortfolioPaymentBalance is the money still owed by customers across all
// live CONFIRMED bookings: agreed totals minus everything collected.
func (s *LedgerService) PortfolioPaymentBalance(ctx context.Context) (float64, error) {
	agreed, err := s.bookings.ConfirmedTotalAmount(ctx)
	if err != nil {
		return 0, err
	}
	collected, err := s.payments.TotalCollected(ctx)
	if err != nil {
		return 0, err
	}
	return agreed - collected, nil
}

// liveBooking loads a booking and rejects soft-deleted ones: a trashed
// booking's ledger is frozen.
func (s *LedgerService) liveBooking(ctx context.Context, id int) (*models.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if booking.IsDeleted {
		return nil, ErrNotFound
	}
	return booking, nil
}

func (s *LedgerService) entryDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.now(), nil
	}
	d, err := timeutil.ParseInIST(timeutil.DateLayout, raw)
	if err != nil {
		return time.Time{}, invalidField("date", "date must be YYYY-MM-DD")
	}
	return d, nil
}
