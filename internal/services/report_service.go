package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"travel-backend/internal/documents"
	"travel-backend/internal/repositories"
	"travel-backend/internal/storage"
	"travel-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
)

// ReportService produces ledger exports and payment receipts.
type ReportService struct {
	bookingRepo  *repositories.BookingRepository
	paymentRepo  *repositories.PaymentRepository
	expenseRepo  *repositories.ExpenseRepository
	customerRepo *repositories.CustomerRepository
	renderer     documents.ReceiptRenderer
	uploader     storage.Uploader
	now          func() time.Time
}

func NewReportService(
	bookingRepo *repositories.BookingRepository,
	paymentRepo *repositories.PaymentRepository,
	expenseRepo *repositories.ExpenseRepository,
	customerRepo *repositories.CustomerRepository,
	renderer documents.ReceiptRenderer,
	uploader storage.Uploader,
) *ReportService {
	return &ReportService{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		expenseRepo:  expenseRepo,
		customerRepo: customerRepo,
		renderer:     renderer,
		uploader:     uploader,
		now:          timeutil.Now,
	}
}

// Export is a generated file ready to stream to the operator.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	StorageKey  string // set when the export was also archived
}

// ExportLedgerCSV writes every live booking with its collected/spent
// roll-ups. When archive storage is configured, a copy is uploaded and the
// returned export carries the storage key.
func (s *ReportService) ExportLedgerCSV(ctx context.Context) (*Export, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Booking ID", "Customer", "Trip", "Travel Date", "Duration",
		"Adults", "Kids", "Status", "Total Amount", "Collected", "Spent", "Balance Due",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, b := range bookings {
		travelDate := ""
		if b.TravelDate != nil {
			travelDate = b.TravelDate.Format(timeutil.DateLayout)
		}
		row := []string{
			strconv.Itoa(b.ID),
			b.CustomerName,
			b.Title,
			travelDate,
			b.Duration,
			strconv.Itoa(b.Adults),
			strconv.Itoa(b.Kids),
			string(b.Status),
			fmt.Sprintf("%.2f", b.TotalAmount),
			fmt.Sprintf("%.2f", b.AmountCollected),
			fmt.Sprintf("%.2f", b.AmountSpent),
			fmt.Sprintf("%.2f", b.TotalAmount-b.AmountCollected),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	export := &Export{
		Filename:    fmt.Sprintf("ledger_%s.csv", s.now().Format("20060102_150405")),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}

	if s.uploader != nil {
		key := "exports/" + export.Filename
		if _, err := s.uploader.Upload(ctx, key, export.ContentType, export.Data); err != nil {
			// The operator still gets the download; archiving is best effort.
			log.Printf("[Report] Failed to archive ledger export: %v", err)
		} else {
			export.StorageKey = key
		}
	}

	return export, nil
}

// PaymentReceipt renders the PDF receipt for one payment.
func (s *ReportService) PaymentReceipt(ctx context.Context, paymentID int) (*Export, error) {
	payment, err := s.paymentRepo.Get(ctx, paymentID)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.Get(ctx, payment.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	customer, err := s.customerRepo.Get(ctx, booking.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	collected, err := s.paymentRepo.SumByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.RenderPaymentReceipt(&documents.ReceiptData{
		Payment:   payment,
		Booking:   booking,
		Customer:  customer,
		Collected: collected,
	})
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename:    fmt.Sprintf("receipt_%d.pdf", payment.ID),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
