package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"travel-backend/internal/services"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// ExportLedger streams the full booking ledger as CSV.
func (h *ReportHandler) ExportLedger(w http.ResponseWriter, r *http.Request) {
	export, err := h.Service.ExportLedgerCSV(r.Context())
	if err != nil {
		log.Printf("[Report] Ledger export failed: %v", err)
		writeServiceError(w, err)
		return
	}

	writeExport(w, export)
}

// PaymentReceipt streams the PDF receipt for one payment.
func (h *ReportHandler) PaymentReceipt(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	export, err := h.Service.PaymentReceipt(r.Context(), id)
	if err != nil {
		if err != services.ErrNotFound {
			log.Printf("[Report] Receipt for payment %d failed: %v", id, err)
		}
		writeServiceError(w, err)
		return
	}

	writeExport(w, export)
}

func writeExport(w http.ResponseWriter, export *services.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}
