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

type InquiryHandler struct {
	Service *services.InquiryService
}

func NewInquiryHandler(s *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{Service: s}
}

// CreateInquiry is the public lead-form endpoint. A duplicate submission is
// a 200 with success=false, not an error status: the form shows the message
// as-is.
func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.CreateLead(r.Context(), &req)
	if err != nil {
		if services.IsValidation(err) || err == services.ErrCaptchaFailed {
			utils.JSON(w, http.StatusBadRequest, models.CreateInquiryResponse{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		log.Printf("[Inquiry] Create failed: %v", err)
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

func (h *InquiryHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	trashed := r.URL.Query().Get("view") == "trash"

	inquiries, err := h.Service.ListInquiries(r.Context(), trashed)
	if err != nil {
		log.Printf("[Inquiry] List failed: %v", err)
		writeServiceError(w, err)
		return
	}
	if inquiries == nil {
		inquiries = []*models.Inquiry{}
	}

	utils.JSON(w, http.StatusOK, inquiries)
}

func (h *InquiryHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	inquiry, err := h.Service.GetInquiry(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, inquiry)
}

func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateInquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.SetStatus(r.Context(), id, req.Status, actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *InquiryHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.MarkRead(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MoveToTrash soft-deletes; the lead disappears from the board but stays
// restorable from the trash view.
func (h *InquiryHandler) MoveToTrash(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.MoveToTrash(r.Context(), id, actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *InquiryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.RestoreFromTrash(r.Context(), id, actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteForever permanently removes a trashed lead. A live lead 404s here;
// it must go through the trash first.
func (h *InquiryHandler) DeleteForever(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteForever(r.Context(), id, actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
