package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-backend/internal/models"
	"travel-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// fakeConversionStore buffers writes and only applies them on commit,
// mirroring the transactional repository.
type fakeConversionStore struct {
	customers map[int]*models.Customer
	bookings  []*models.Booking
	payments  []*models.Payment
	booked    []int

	failPayment bool
	nextID      int
}

func newFakeConversionStore() *fakeConversionStore {
	return &fakeConversionStore{customers: make(map[int]*models.Customer), nextID: 1}
}

type fakeConversionTx struct {
	store *fakeConversionStore

	customers []*models.Customer
	bookings  []*models.Booking
	payments  []*models.Payment
	booked    []int
}

func (f *fakeConversionStore) WithinTx(ctx context.Context, fn func(tx repositories.ConversionTx) error) error {
	tx := &fakeConversionTx{store: f}
	if err := fn(tx); err != nil {
		return err
	}
	// Commit
	for _, c := range tx.customers {
		f.customers[c.ID] = c
	}
	f.bookings = append(f.bookings, tx.bookings...)
	f.payments = append(f.payments, tx.payments...)
	f.booked = append(f.booked, tx.booked...)
	return nil
}

func (t *fakeConversionTx) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	c, ok := t.store.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (t *fakeConversionTx) CreateCustomer(ctx context.Context, c *models.Customer) error {
	c.ID = t.store.nextID
	t.store.nextID++
	t.customers = append(t.customers, c)
	return nil
}

func (t *fakeConversionTx) CreateBooking(ctx context.Context, b *models.Booking) error {
	b.ID = t.store.nextID
	t.store.nextID++
	t.bookings = append(t.bookings, b)
	return nil
}

func (t *fakeConversionTx) CreatePayment(ctx context.Context, p *models.Payment) error {
	if t.store.failPayment {
		return errors.New("payment insert failed")
	}
	p.ID = t.store.nextID
	t.store.nextID++
	t.payments = append(t.payments, p)
	return nil
}

func (t *fakeConversionTx) MarkInquiryBooked(ctx context.Context, inquiryID int) error {
	t.booked = append(t.booked, inquiryID)
	return nil
}

func intPtr(n int) *int { return &n }

func validConvertRequest() *models.ConvertLeadRequest {
	return &models.ConvertLeadRequest{
		InquiryID: intPtr(7),
		NewCustomer: &models.NewCustomerInput{
			Name:  "Asha Verma",
			Phone: "9876543210",
		},
		Title:              "Ladakh 6N/7D",
		TravelDate:         "2026-05-01",
		Duration:           "7 days",
		Adults:             2,
		Kids:               1,
		TotalAmount:        85000,
		InitialPayment:     5000,
		InitialPaymentMode: models.ModeUPI,
	}
}

func TestConvertCreatesCustomerBookingAndPayment(t *testing.T) {
	store := newFakeConversionStore()
	audit := &fakeAudit{}
	svc := NewConversionService(store, audit)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	booking, err := svc.Convert(context.Background(), validConvertRequest(), "ops@example.com")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	if len(store.customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(store.customers))
	}
	if len(store.bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(store.bookings))
	}
	if booking.Status != models.BookingConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", booking.Status)
	}
	if booking.CustomerID == 0 {
		t.Fatal("booking must be linked to the created customer")
	}

	if len(store.payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(store.payments))
	}
	p := store.payments[0]
	if p.Amount != 5000 || p.Mode != models.ModeUPI || p.BookingID != booking.ID {
		t.Fatalf("unexpected payment %+v", p)
	}

	if len(store.booked) != 1 || store.booked[0] != 7 {
		t.Fatalf("inquiry 7 should be marked booked, got %v", store.booked)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != "booking.convert" {
		t.Fatalf("expected one booking.convert audit entry, got %+v", audit.entries)
	}
}

func TestConvertRollsBackOnPaymentFailure(t *testing.T) {
	store := newFakeConversionStore()
	store.failPayment = true
	svc := NewConversionService(store, &fakeAudit{})

	if _, err := svc.Convert(context.Background(), validConvertRequest(), "ops"); err == nil {
		t.Fatal("expected error from failed payment insert")
	}

	if len(store.customers) != 0 || len(store.bookings) != 0 || len(store.payments) != 0 || len(store.booked) != 0 {
		t.Fatalf("nothing may persist on failure: %d customers, %d bookings, %d payments, %d booked",
			len(store.customers), len(store.bookings), len(store.payments), len(store.booked))
	}
}

func TestConvertExistingCustomer(t *testing.T) {
	store := newFakeConversionStore()
	store.customers[42] = &models.Customer{ID: 42, Name: "Ravi", Phone: "9876543211"}
	svc := NewConversionService(store, &fakeAudit{})

	req := validConvertRequest()
	req.NewCustomer = nil
	req.CustomerID = intPtr(42)
	req.InitialPayment = 0

	booking, err := svc.Convert(context.Background(), req, "ops")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if booking.CustomerID != 42 {
		t.Fatalf("expected customer 42, got %d", booking.CustomerID)
	}
	if len(store.payments) != 0 {
		t.Fatal("no initial payment requested, none should exist")
	}
}

func TestConvertMissingCustomer(t *testing.T) {
	store := newFakeConversionStore()
	svc := NewConversionService(store, &fakeAudit{})

	req := validConvertRequest()
	req.NewCustomer = nil
	req.CustomerID = intPtr(99)

	if _, err := svc.Convert(context.Background(), req, "ops"); !IsValidation(err) {
		t.Fatalf("expected validation error for missing customer, got %v", err)
	}
	if len(store.bookings) != 0 {
		t.Fatal("nothing may persist when the customer lookup fails")
	}
}

func TestConvertCustomerExclusivity(t *testing.T) {
	svc := NewConversionService(newFakeConversionStore(), &fakeAudit{})

	// Neither customer_id nor new_customer.
	req := validConvertRequest()
	req.NewCustomer = nil
	if _, err := svc.Convert(context.Background(), req, "ops"); !IsValidation(err) {
		t.Fatalf("expected validation error with no customer, got %v", err)
	}

	// Both at once.
	req = validConvertRequest()
	req.CustomerID = intPtr(1)
	if _, err := svc.Convert(context.Background(), req, "ops"); !IsValidation(err) {
		t.Fatalf("expected validation error with both customer inputs, got %v", err)
	}
}

func TestConvertValidation(t *testing.T) {
	svc := NewConversionService(newFakeConversionStore(), &fakeAudit{})

	cases := []struct {
		name   string
		mutate func(*models.ConvertLeadRequest)
	}{
		{"empty title", func(r *models.ConvertLeadRequest) { r.Title = " " }},
		{"negative total", func(r *models.ConvertLeadRequest) { r.TotalAmount = -1 }},
		{"negative initial payment", func(r *models.ConvertLeadRequest) { r.InitialPayment = -500 }},
		{"negative travelers", func(r *models.ConvertLeadRequest) { r.Adults = -1 }},
		{"bad travel date", func(r *models.ConvertLeadRequest) { r.TravelDate = "May 1st" }},
		{"short new customer phone", func(r *models.ConvertLeadRequest) { r.NewCustomer.Phone = "123" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validConvertRequest()
			tc.mutate(req)
			if _, err := svc.Convert(context.Background(), req, "ops"); !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
