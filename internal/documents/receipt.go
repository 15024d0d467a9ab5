package documents

import (
	"bytes"
	"fmt"

	"travel-backend/internal/models"
	"travel-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptRenderer produces the payment receipt handed to the customer.
type ReceiptRenderer interface {
	RenderPaymentReceipt(data *ReceiptData) ([]byte, error)
}

// ReceiptData is everything one receipt shows.
type ReceiptData struct {
	Payment   *models.Payment
	Booking   *models.Booking
	Customer  *models.Customer
	Collected float64 // total collected so far, this payment included
}

// PDFReceiptRenderer renders receipts with gofpdf.
type PDFReceiptRenderer struct {
	AgencyName string
}

func NewPDFReceiptRenderer(agencyName string) *PDFReceiptRenderer {
	if agencyName == "" {
		agencyName = "Travel Desk"
	}
	return &PDFReceiptRenderer{AgencyName: agencyName}
}

func (r *PDFReceiptRenderer) RenderPaymentReceipt(data *ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Payment Receipt", r.AgencyName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer block
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", data.Customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", data.Customer.Phone), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Trip block
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Trip", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Booking #%d: %s", data.Booking.ID, data.Booking.Title), "LB", 0, "L", false, 0, "")
	travelDate := "TBD"
	if data.Booking.TravelDate != nil {
		travelDate = data.Booking.TravelDate.Format("02 Jan 2006")
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Travel Date: %s", travelDate), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Travelers: %d adults, %d kids", data.Booking.Adults, data.Booking.Kids), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Package Total: Rs. %.2f", data.Booking.TotalAmount), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Payment block
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Amount: Rs. %.2f", data.Payment.Amount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Mode: %s", data.Payment.Mode), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Date: %s", data.Payment.Date.Format("02 Jan 2006")), "1", 1, "C", false, 0, "")
	if data.Payment.Reference != "" {
		pdf.CellFormat(190, 7, fmt.Sprintf("Reference: %s", data.Payment.Reference), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Balance line
	balance := data.Booking.TotalAmount - data.Collected
	if balance > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Balance Due: Rs. %.2f", balance)
	if balance <= 0 {
		balanceText = "Fully Paid"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
