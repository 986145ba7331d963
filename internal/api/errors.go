package api

import (
	"encoding/json"
	"net/http"

	"seqapi/internal/errors"
)

// ErrorCodeHeader carries the stable error code alongside the JSON body
const ErrorCodeHeader = "X-Error-Code"

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes an error response to the HTTP response writer.
// SeqErrors expose their client message; anything else is reported as-is.
func WriteError(w http.ResponseWriter, err error, status int) {
	message := err.Error()
	if seqErr, ok := err.(*errors.SeqError); ok {
		message = seqErr.Message
		w.Header().Set(ErrorCodeHeader, string(seqErr.Code))
	} else {
		w.Header().Set(ErrorCodeHeader, string(errors.InternalError))
	}

	WriteJSON(w, ErrorResponse{Error: message}, status)
}

// WriteSeqError writes err with automatic status code mapping
func WriteSeqError(w http.ResponseWriter, err error) {
	WriteError(w, err, MapSeqErrorToStatus(errors.CodeOf(err)))
}

// MapSeqErrorToStatus maps error codes to HTTP status codes
func MapSeqErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.MissingOrNonInteger, errors.NegativeValue, errors.TooLarge:
		return http.StatusBadRequest // 400
	case errors.NotFound:
		return http.StatusNotFound // 404
	case errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, errors.NewSeqError(errors.NotFound, message, nil), http.StatusNotFound)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string, err error) {
	WriteError(w, errors.NewSeqError(errors.InternalError, message, err), http.StatusInternalServerError)
}
