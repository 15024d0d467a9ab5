package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"travel-backend/internal/models"
	"travel-backend/internal/services"
	"travel-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// LedgerHandler covers the money side of a booking: payments in, expenses
// out, and the portfolio-wide balance.
type LedgerHandler struct {
	Service *services.LedgerService
}

func NewLedgerHandler(s *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{Service: s}
}

func (h *LedgerHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := h.Service.AddPayment(r.Context(), bookingID, &req, actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, payment)
}

func (h *LedgerHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := h.Service.UpdatePayment(r.Context(), id, &req, actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, payment)
}

func (h *LedgerHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	bookingID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Service.AddExpense(r.Context(), bookingID, &req, actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, expense)
}

func (h *LedgerHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Service.UpdateExpense(r.Context(), id, &req, actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, expense)
}

func (h *LedgerHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteExpense(r.Context(), id, actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// PortfolioBalance is the outstanding customer balance across all live
// confirmed bookings.
func (h *LedgerHandler) PortfolioBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.Service.PortfolioPaymentBalance(r.Context())
	if err != nil {
		log.Printf("[Ledger] Portfolio balance failed: %v", err)
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]float64{"payment_balance": balance})
}
