package handlers

import (
	"errors"
	"net/http"

	"travel-backend/internal/middleware"
	"travel-backend/internal/services"
	"travel-backend/pkg/utils"
)

// writeServiceError maps business outcomes onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the real error goes to the log
// at the call site, not to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case services.IsValidation(err):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "record not found")
	case errors.Is(err, services.ErrCustomerHasBookings):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCaptchaFailed):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// actorFrom names the operator for the audit trail.
func actorFrom(r *http.Request) string {
	if email, ok := middleware.GetEmailFromContext(r.Context()); ok && email != "" {
		return email
	}
	return "system"
}
