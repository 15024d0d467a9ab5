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

type BookingHandler struct {
	Ledger     *services.LedgerService
	Conversion *services.ConversionService
}

func NewBookingHandler(ledger *services.LedgerService, conversion *services.ConversionService) *BookingHandler {
	return &BookingHandler{Ledger: ledger, Conversion: conversion}
}

// ConvertLead creates the booking (plus optional inline customer and
// initial payment) in one shot.
func (h *BookingHandler) ConvertLead(w http.ResponseWriter, r *http.Request) {
	var req models.ConvertLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	booking, err := h.Conversion.Convert(r.Context(), &req, actorFrom(r))
	if err != nil {
		if !services.IsValidation(err) {
			log.Printf("[Booking] Conversion failed: %v", err)
		}
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"booking_id": booking.ID,
		"booking":    booking,
	})
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Ledger.ListBookings(r.Context())
	if err != nil {
		log.Printf("[Booking] List failed: %v", err)
		writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.BookingWithTotals{}
	}

	utils.JSON(w, http.StatusOK, bookings)
}

// GetBooking returns the booking with its full ledger and balances.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	detail, err := h.Ledger.GetBookingDetail(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, detail)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	booking, err := h.Ledger.UpdateBooking(r.Context(), id, &req, actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Ledger.SoftDeleteBooking(r.Context(), id, actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
