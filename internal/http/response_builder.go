package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"otslip/internal/core"
	"otslip/internal/services"
)

// apiError is the JSON error envelope. Code is a stable machine-readable
// identifier; Error carries the human-readable message verbatim.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses and stable codes.
func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	writeJSON(w, status, apiError{Error: err.Error(), Code: code})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNoEmployeeSelected):
		return http.StatusUnprocessableEntity, "no_employee_selected"
	case errors.Is(err, core.ErrNoDateSelected):
		return http.StatusUnprocessableEntity, "no_date_selected"
	case errors.Is(err, core.ErrInvalidHours):
		return http.StatusUnprocessableEntity, "invalid_hours"
	case errors.Is(err, core.ErrDateOutOfRange):
		return http.StatusUnprocessableEntity, "date_out_of_range"
	case errors.Is(err, core.ErrUnknownCategory):
		return http.StatusUnprocessableEntity, "unknown_category"
	case errors.Is(err, core.ErrEntryIndex):
		return http.StatusNotFound, "entry_not_found"
	case errors.Is(err, services.ErrExportBusy):
		return http.StatusConflict, "export_busy"
	default:
		return http.StatusInternalServerError, ""
	}
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
}
