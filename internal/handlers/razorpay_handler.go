package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"travel-backend/internal/models"
	"travel-backend/internal/services"
	"travel-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// OnlinePaymentService is the slice of the Razorpay service the HTTP layer
// depends on.
type OnlinePaymentService interface {
	CreateOrder(ctx context.Context, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error)
	VerifyWebhookSignature(body []byte, signature string) bool
	ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error
	ListBookingTransactions(ctx context.Context, bookingID int) ([]models.OnlineTransaction, error)
}

type RazorpayHandler struct {
	Service OnlinePaymentService
}

func NewRazorpayHandler(s OnlinePaymentService) *RazorpayHandler {
	return &RazorpayHandler{Service: s}
}

// CreateOrder opens an online payment order against the booking named in the
// URL. The body may repeat the booking id, but it must agree with the path.
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	bookingID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateOnlinePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BookingID != 0 && req.BookingID != bookingID {
		utils.Error(w, http.StatusBadRequest, "booking id in body does not match URL")
		return
	}
	req.BookingID = bookingID

	resp, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		if !services.IsValidation(err) {
			log.Printf("[Razorpay] Order creation failed: %v", err)
		}
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Webhook receives Razorpay delivery callbacks. The signature covers the
// raw body, so it is read before any decoding.
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[Razorpay] Webhook signature mismatch")
		utils.Error(w, http.StatusBadRequest, "invalid signature")
		return
	}

	var event struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	if err := h.Service.ProcessWebhook(r.Context(), event.Event, event.Payload); err != nil {
		log.Printf("[Razorpay] Webhook %s failed: %v", event.Event, err)
		utils.Error(w, http.StatusInternalServerError, "webhook processing failed")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *RazorpayHandler) ListBookingTransactions(w http.ResponseWriter, r *http.Request) {
	bookingID, _ := strconv.Atoi(mux.Vars(r)["id"])

	txns, err := h.Service.ListBookingTransactions(r.Context(), bookingID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if txns == nil {
		txns = []models.OnlineTransaction{}
	}

	utils.JSON(w, http.StatusOK, txns)
}
