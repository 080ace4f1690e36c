// Package error defines the API error body and its encoding.
package error

import (
	"encoding/json"
	"net/http"
)

// Error is the body every failed request carries. ErrorID echoes the
// request id so server logs can be correlated with a client report.
type Error struct {
	Code    ErrorCode `json:"code"`
	Status  int       `json:"status"`
	Message string    `json:"message"`
	ErrorID string    `json:"error_id"`
}

func (e *Error) Error() string {
	return e.Message
}

// EncodeError writes the error body and its mapped status code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message string, errorID string) error {
	body := Error{
		Code:    code,
		Status:  code.StatusCode(),
		Message: message,
		ErrorID: errorID,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	return json.NewEncoder(w).Encode(body)
}

// EncodeInternalError writes an opaque 500. Internal details stay in the
// logs, keyed by the request id.
func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
