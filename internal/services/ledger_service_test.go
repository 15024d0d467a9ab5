package services

import (
	"context"
	"errors"
	"testing"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type fakeBookingStore struct {
	bookings map[int]*models.Booking
	agreed   float64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[int]*models.Booking)}
}

func (f *fakeBookingStore) Get(ctx context.Context, id int) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingStore) List(ctx context.Context) ([]*models.BookingWithTotals, error) {
	return nil, nil
}

func (f *fakeBookingStore) ListByCustomer(ctx context.Context, customerID int) ([]*models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) Update(ctx context.Context, b *models.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingStore) SoftDelete(ctx context.Context, id int) error {
	b, ok := f.bookings[id]
	if !ok || b.IsDeleted {
		return pgx.ErrNoRows
	}
	b.IsDeleted = true
	return nil
}

func (f *fakeBookingStore) ConfirmedTotalAmount(ctx context.Context) (float64, error) {
	return f.agreed, nil
}

type fakePaymentStore struct {
	payments map[int]*models.Payment
	nextID   int
	total    float64
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[int]*models.Payment), nextID: 1}
}

func (f *fakePaymentStore) Create(ctx context.Context, p *models.Payment) error {
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentStore) Get(ctx context.Context, id int) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) ListByBooking(ctx context.Context, bookingID int) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) Update(ctx context.Context, p *models.Payment) error {
	if _, ok := f.payments[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentStore) SumByBooking(ctx context.Context, bookingID int) (float64, error) {
	var sum float64
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (f *fakePaymentStore) TotalCollected(ctx context.Context) (float64, error) {
	return f.total, nil
}

type fakeExpenseStore struct {
	expenses map[int]*models.Expense
	nextID   int
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[int]*models.Expense), nextID: 1}
}

func (f *fakeExpenseStore) Create(ctx context.Context, e *models.Expense) error {
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.expenses[e.ID] = &cp
	return nil
}

func (f *fakeExpenseStore) Get(ctx context.Context, id int) (*models.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExpenseStore) ListByBooking(ctx context.Context, bookingID int) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, e := range f.expenses {
		if e.BookingID == bookingID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeExpenseStore) Update(ctx context.Context, e *models.Expense) error {
	if _, ok := f.expenses[e.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *e
	f.expenses[e.ID] = &cp
	return nil
}

func (f *fakeExpenseStore) Delete(ctx context.Context, id int) error {
	if _, ok := f.expenses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseStore) SumByBooking(ctx context.Context, bookingID int) (float64, error) {
	var sum float64
	for _, e := range f.expenses {
		if e.BookingID == bookingID {
			sum += e.Amount
		}
	}
	return sum, nil
}

func newTestLedger() (*LedgerService, *fakeBookingStore, *fakePaymentStore, *fakeExpenseStore) {
	bookings := newFakeBookingStore()
	payments := newFakePaymentStore()
	expenses := newFakeExpenseStore()
	svc := NewLedgerService(bookings, payments, expenses, &fakeAudit{})
	return svc, bookings, payments, expenses
}

func TestAddPaymentValidation(t *testing.T) {
	svc, bookings, payments, _ := newTestLedger()
	bookings.bookings[1] = &models.Booking{ID: 1, Title: "Goa", TotalAmount: 50000, Status: models.BookingConfirmed}
	ctx := context.Background()

	if _, err := svc.AddPayment(ctx, 1, &models.CreatePaymentRequest{Amount: -100}, "ops"); !IsValidation(err) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
	if _, err := svc.AddPayment(ctx, 1, &models.CreatePaymentRequest{Amount: 100, Mode: "BARTER"}, "ops"); !IsValidation(err) {
		t.Fatalf("expected validation error for unknown mode, got %v", err)
	}
	if _, err := svc.AddPayment(ctx, 99, &models.CreatePaymentRequest{Amount: 100}, "ops"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for missing booking, got %v", err)
	}

	// Mode defaults to cash, date defaults to now.
	p, err := svc.AddPayment(ctx, 1, &models.CreatePaymentRequest{Amount: 5000}, "ops")
	if err != nil {
		t.Fatalf("add payment failed: %v", err)
	}
	if p.Mode != models.ModeCash {
		t.Fatalf("expected CASH default, got %s", p.Mode)
	}
	if p.Date.IsZero() {
		t.Fatal("entry date should default to now")
	}
	if len(payments.payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments.payments))
	}
}

func TestSoftDeletedBookingLedgerIsFrozen(t *testing.T) {
	svc, bookings, _, _ := newTestLedger()
	bookings.bookings[1] = &models.Booking{ID: 1, Title: "Goa", IsDeleted: true}
	ctx := context.Background()

	if _, err := svc.AddPayment(ctx, 1, &models.CreatePaymentRequest{Amount: 100}, "ops"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("payments on a trashed booking must fail, got %v", err)
	}
	if _, err := svc.AddExpense(ctx, 1, &models.CreateExpenseRequest{Title: "Hotel", Amount: 100}, "ops"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expenses on a trashed booking must fail, got %v", err)
	}
	if _, err := svc.GetBookingDetail(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("detail of a trashed booking must be not found, got %v", err)
	}
}

func TestBookingDetailBalances(t *testing.T) {
	svc, bookings, payments, expenses := newTestLedger()
	bookings.bookings[1] = &models.Booking{ID: 1, Title: "Goa", TotalAmount: 50000, Status: models.BookingConfirmed}
	ctx := context.Background()

	payments.Create(ctx, &models.Payment{BookingID: 1, Amount: 20000, Mode: models.ModeUPI})
	payments.Create(ctx, &models.Payment{BookingID: 1, Amount: 10000, Mode: models.ModeCash})
	expenses.Create(ctx, &models.Expense{BookingID: 1, Title: "Hotel", Amount: 8000, Category: models.ExpenseHotel, Mode: models.ModeBankTransfer})

	detail, err := svc.GetBookingDetail(ctx, 1)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.AmountCollected != 30000 {
		t.Fatalf("collected = %v, want 30000", detail.AmountCollected)
	}
	if detail.AmountSpent != 8000 {
		t.Fatalf("spent = %v, want 8000", detail.AmountSpent)
	}
	if detail.CustomerBalance != 20000 {
		t.Fatalf("balance = %v, want 20000", detail.CustomerBalance)
	}
}

func TestUpdatePaymentRecordsPriorAmount(t *testing.T) {
	bookings := newFakeBookingStore()
	payments := newFakePaymentStore()
	audit := &fakeAudit{}
	svc := NewLedgerService(bookings, payments, newFakeExpenseStore(), audit)
	ctx := context.Background()

	payments.Create(ctx, &models.Payment{BookingID: 1, Amount: 5000, Mode: models.ModeCash})

	updated, err := svc.UpdatePayment(ctx, 1, &models.UpdatePaymentRequest{Amount: 7500, Mode: models.ModeUPI}, "ops")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Amount != 7500 || updated.Mode != models.ModeUPI {
		t.Fatalf("unexpected payment %+v", updated)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	if audit.entries[0].Detail != "amount 5000.00 -> 7500.00" {
		t.Fatalf("audit must carry the prior amount, got %q", audit.entries[0].Detail)
	}
}

func TestExpenseDefaultsAndDelete(t *testing.T) {
	svc, bookings, _, expenses := newTestLedger()
	bookings.bookings[1] = &models.Booking{ID: 1, Title: "Goa"}
	ctx := context.Background()

	e, err := svc.AddExpense(ctx, 1, &models.CreateExpenseRequest{Title: "Cab", Amount: 1200}, "ops")
	if err != nil {
		t.Fatalf("add expense failed: %v", err)
	}
	if e.Category != models.ExpenseOther {
		t.Fatalf("category should default to OTHER, got %s", e.Category)
	}
	if e.Mode != models.ModeCash {
		t.Fatalf("mode should default to CASH, got %s", e.Mode)
	}

	negative := -100.0
	if _, err := svc.AddExpense(ctx, 1, &models.CreateExpenseRequest{Title: "Cab", Amount: 10, TotalCost: &negative}, "ops"); !IsValidation(err) {
		t.Fatalf("expected validation error for negative total cost, got %v", err)
	}

	if err := svc.DeleteExpense(ctx, e.ID, "ops"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(expenses.expenses) != 0 {
		t.Fatal("expense should be gone")
	}
	if err := svc.DeleteExpense(ctx, e.ID, "ops"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}

func TestPortfolioPaymentBalance(t *testing.T) {
	svc, bookings, payments, _ := newTestLedger()
	bookings.agreed = 250000
	payments.total = 90000

	balance, err := svc.PortfolioPaymentBalance(context.Background())
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 160000 {
		t.Fatalf("balance = %v, want 160000", balance)
	}
}
