// Package api provides common API utility functions.
package api

import (
	"net/http"

	"passbook/pkg/httputil"
	"passbook/pkg/logger"
)

// DecodeRequest decodes the JSON request body into data and writes the
// common error response on failure.
func DecodeRequest(w http.ResponseWriter, r *http.Request, data interface{}, operation string) bool {
	if err := httputil.DecodeJSON(r, data); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		logger.Error("Failed to decode JSON for "+operation, err)
		return false
	}
	return true
}

// WriteSuccessResponse writes a standardized success response.
func WriteSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	httputil.WriteJSON(w, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteErrorResponse writes a standardized error response. The header
// must be set before the status line is written or it is dropped.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	httputil.WriteJSON(w, ErrorResponse{
		Success: false,
		Error:   message,
	})
}
