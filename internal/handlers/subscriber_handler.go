package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"travel-backend/internal/models"
	"travel-backend/internal/services"
	"travel-backend/pkg/utils"
)

type SubscriberHandler struct {
	Service *services.SubscriberService
}

func NewSubscriberHandler(s *services.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{Service: s}
}

// Subscribe is the public newsletter signup.
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.Service.Subscribe(r.Context(), &req); err != nil {
		if !services.IsValidation(err) {
			log.Printf("[Subscriber] Subscribe failed: %v", err)
		}
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Unsubscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SubscriberHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Service.List(r.Context())
	if err != nil {
		log.Printf("[Subscriber] List failed: %v", err)
		writeServiceError(w, err)
		return
	}
	if subs == nil {
		subs = []models.Subscriber{}
	}

	utils.JSON(w, http.StatusOK, subs)
}
