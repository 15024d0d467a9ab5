package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-backend/internal/models"

	"github.com/gorilla/mux"
)

type fakeOnlinePayments struct {
	lastOrder *models.CreateOnlinePaymentRequest
}

func (f *fakeOnlinePayments) CreateOrder(ctx context.Context, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error) {
	cp := *req
	f.lastOrder = &cp
	return &models.CreateOrderResponse{
		OrderID:   "order_test",
		Amount:    req.Amount,
		Currency:  "INR",
		BookingID: req.BookingID,
	}, nil
}

func (f *fakeOnlinePayments) VerifyWebhookSignature(body []byte, signature string) bool {
	return true
}

func (f *fakeOnlinePayments) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	return nil
}

func (f *fakeOnlinePayments) ListBookingTransactions(ctx context.Context, bookingID int) ([]models.OnlineTransaction, error) {
	return nil, nil
}

func postOrder(t *testing.T, h *RazorpayHandler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{id}/order", h.CreateOrder).Methods("POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf)))
	return rec
}

func TestCreateOrderUsesBookingFromPath(t *testing.T) {
	svc := &fakeOnlinePayments{}
	h := NewRazorpayHandler(svc)

	// The body omits booking_id; the URL alone identifies the booking.
	rec := postOrder(t, h, "/api/bookings/5/order", models.CreateOnlinePaymentRequest{Amount: 2500})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastOrder == nil || svc.lastOrder.BookingID != 5 {
		t.Fatalf("order should target booking 5, got %+v", svc.lastOrder)
	}
}

func TestCreateOrderRejectsMismatchedBody(t *testing.T) {
	svc := &fakeOnlinePayments{}
	h := NewRazorpayHandler(svc)

	rec := postOrder(t, h, "/api/bookings/5/order", models.CreateOnlinePaymentRequest{BookingID: 9, Amount: 2500})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if svc.lastOrder != nil {
		t.Fatalf("mismatched request must not reach the payment service, got %+v", svc.lastOrder)
	}

	// A body that repeats the path id is accepted.
	rec = postOrder(t, h, "/api/bookings/5/order", models.CreateOnlinePaymentRequest{BookingID: 5, Amount: 2500})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastOrder == nil || svc.lastOrder.BookingID != 5 {
		t.Fatalf("order should target booking 5, got %+v", svc.lastOrder)
	}
}
