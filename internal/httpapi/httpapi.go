// Package httpapi holds the response helpers, middleware and request
// context plumbing shared by all HTTP handlers.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinicdesk/booking/pkg/types"
)

type contextKey string

const patientIDKey contextKey = "patient_id"

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error string            `json:"error"`
	Code  string            `json:"code,omitempty"`
	Codes []types.ErrorCode `json:"codes,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response, mapping the error's category to
// an HTTP status code.
func WriteError(w http.ResponseWriter, err error) {
	if e, ok := types.AsError(err); ok {
		WriteJSON(w, statusFor(e), &ErrorResponse{
			Error: e.Message,
			Code:  string(e.Code),
			Codes: e.Codes,
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{Error: err.Error()})
}

// statusFor maps an error category to an HTTP status code
func statusFor(e *types.Error) int {
	switch e.Type {
	case types.ErrorTypeValidation:
		return http.StatusBadRequest
	case types.ErrorTypeConflict:
		return http.StatusConflict
	case types.ErrorTypeNotFound:
		return http.StatusNotFound
	case types.ErrorTypeAuth:
		return http.StatusUnauthorized
	case types.ErrorTypeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithPatientID returns a context carrying the authenticated patient's ID
func WithPatientID(ctx context.Context, patientID string) context.Context {
	return context.WithValue(ctx, patientIDKey, patientID)
}

// PatientIDFromContext extracts the authenticated patient's ID from the
// request context. The logged-in patient travels with every request rather
// than living in ambient session state.
func PatientIDFromContext(ctx context.Context) (string, bool) {
	patientID, ok := ctx.Value(patientIDKey).(string)
	return patientID, ok && patientID != ""
}
