package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-backend/internal/cache"
	"travel-backend/internal/models"
	"travel-backend/internal/repositories"
	"travel-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
)

// ConversionService turns a lead into a booking. The whole materialization
// (optional new customer, booking, optional initial payment, pipeline move to
// BOOKED) runs inside one transaction.
type ConversionService struct {
	store repositories.ConversionStore
	audit AuditWriter
	now   func() time.Time
}

func NewConversionService(store repositories.ConversionStore, audit AuditWriter) *ConversionService {
	return &ConversionService{store: store, audit: audit, now: timeutil.Now}
}

// Convert validates the operator's trip data and materializes the booking.
// On any failure nothing persists: no customer, no booking, no payment and
// the inquiry stays in its prior pipeline stage.
func (s *ConversionService) Convert(ctx context.Context, req *models.ConvertLeadRequest, actor string) (*models.Booking, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidField("title", "trip title is required")
	}
	if req.TotalAmount < 0 {
		return nil, invalidField("total_amount", "total amount cannot be negative")
	}
	if req.InitialPayment < 0 {
		return nil, invalidField("initial_payment", "initial payment cannot be negative")
	}
	if req.Adults < 0 || req.Kids < 0 {
		return nil, invalidField("travelers", "traveler counts cannot be negative")
	}

	hasExisting := req.CustomerID != nil && *req.CustomerID > 0
	hasNew := req.NewCustomer != nil
	if hasExisting == hasNew {
		return nil, invalidField("customer", "provide either customer_id or new_customer, not both")
	}
	if hasNew {
		if strings.TrimSpace(req.NewCustomer.Name) == "" {
			return nil, invalidField("new_customer.name", "name is required")
		}
		if len(strings.TrimSpace(req.NewCustomer.Phone)) < 10 {
			return nil, invalidField("new_customer.phone", "phone must be at least 10 characters")
		}
	}

	var travelDate *time.Time
	if req.TravelDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.TravelDate)
		if err != nil {
			return nil, invalidField("travel_date", "travel date must be YYYY-MM-DD")
		}
		travelDate = &d
	}

	if req.InitialPayment > 0 {
		if req.InitialPaymentMode == "" {
			req.InitialPaymentMode = models.ModeCash
		}
		if !req.InitialPaymentMode.Valid() {
			return nil, invalidField("initial_payment_mode", fmt.Sprintf("unknown payment mode %q", req.InitialPaymentMode))
		}
	}

	booking := &models.Booking{
		Title:       strings.TrimSpace(req.Title),
		TravelDate:  travelDate,
		Duration:    strings.TrimSpace(req.Duration),
		Adults:      req.Adults,
		Kids:        req.Kids,
		TotalAmount: req.TotalAmount,
		Status:      models.BookingConfirmed,
	}

	err := s.store.WithinTx(ctx, func(tx repositories.ConversionTx) error {
		if hasExisting {
			customer, err := tx.GetCustomer(ctx, *req.CustomerID)
			if err == pgx.ErrNoRows {
				return invalidField("customer_id", fmt.Sprintf("customer %d does not exist", *req.CustomerID))
			}
			if err != nil {
				return err
			}
			booking.CustomerID = customer.ID
		} else {
			customer := &models.Customer{
				Name:    strings.TrimSpace(req.NewCustomer.Name),
				Phone:   strings.TrimSpace(req.NewCustomer.Phone),
				Email:   strings.TrimSpace(req.NewCustomer.Email),
				Address: strings.TrimSpace(req.NewCustomer.Address),
			}
			if err := tx.CreateCustomer(ctx, customer); err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
			booking.CustomerID = customer.ID
		}

		if err := tx.CreateBooking(ctx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if req.InitialPayment > 0 {
			payment := &models.Payment{
				BookingID: booking.ID,
				Amount:    req.InitialPayment,
				Date:      s.now(),
				Mode:      req.InitialPaymentMode,
			}
			if err := tx.CreatePayment(ctx, payment); err != nil {
				return fmt.Errorf("failed to record initial payment: %w", err)
			}
		}

		if req.InquiryID != nil && *req.InquiryID > 0 {
			if err := tx.MarkInquiryBooked(ctx, *req.InquiryID); err != nil {
				return fmt.Errorf("failed to update inquiry: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("customer %d, total %.2f", booking.CustomerID, booking.TotalAmount)
	if req.InquiryID != nil {
		detail = fmt.Sprintf("from inquiry %d, %s", *req.InquiryID, detail)
	}
	recordAudit(ctx, s.audit, actor, "booking.convert", "booking", booking.ID, detail)

	cache.InvalidateBookingCaches(ctx)
	cache.InvalidateInquiryCaches(ctx)
	cache.InvalidateCustomerCaches(ctx)

	return booking, nil
}
