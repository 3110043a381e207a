package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"
)

// writeJSONResponse writes a JSON response with the given status code
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes an error response with the given status code
func writeErrorResponse(w http.ResponseWriter, statusCode int, message, details string) {
	errorResp := models.APIError{
		Type:    "error",
		Code:    http.StatusText(statusCode),
		Message: message,
		Details: details,
	}

	writeJSONResponse(w, statusCode, errorResp)
}

// writeAppErrorResponse writes an AppError as HTTP response
func writeAppErrorResponse(w http.ResponseWriter, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		apiError := models.APIError{
			Type:    string(appErr.Type),
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}

		writeJSONResponse(w, appErr.GetHTTPStatusCode(), apiError)

		// Log error details for debugging
		log.Printf("API Error [%s]: %s - %v", appErr.Code, appErr.Message, appErr.Cause)
		return
	}

	log.Printf("Unexpected error type: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
}

// parseWindow reads optional "max" and "offset" query parameters. Missing
// or malformed values are left to the resolver's per-relation defaults.
func parseWindow(r *http.Request) *models.Pagination {
	window := &models.Pagination{}
	present := false

	if raw := r.URL.Query().Get("max"); raw != "" {
		if max, err := strconv.Atoi(raw); err == nil && max > 0 {
			window.Max = max
			present = true
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			window.Offset = offset
			present = true
		}
	}

	if !present {
		return nil
	}
	return window
}
