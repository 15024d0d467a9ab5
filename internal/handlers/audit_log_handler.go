package handlers

import (
	"log"
	"net/http"
	"strconv"

	"travel-backend/internal/models"
	"travel-backend/internal/services"
	"travel-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	Service *services.AuditService
}

func NewAuditLogHandler(s *services.AuditService) *AuditLogHandler {
	return &AuditLogHandler{Service: s}
}

func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	logs, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		log.Printf("[Audit] List failed: %v", err)
		writeServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	utils.JSON(w, http.StatusOK, logs)
}

// ListEntityAuditLogs returns the trail for one record, newest first.
func (h *AuditLogHandler) ListEntityAuditLogs(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityType := vars["type"]
	entityID, _ := strconv.Atoi(vars["id"])

	logs, err := h.Service.ListByEntity(r.Context(), entityType, entityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	utils.JSON(w, http.StatusOK, logs)
}
