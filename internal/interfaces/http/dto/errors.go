package dto

import (
	"net/http"
	"strings"
)

// Domain error codes surfaced by the API. Conflicts with recorded state
// (duplicates, overdraws, linked records, closed sales) all map to 409 so
// the admin UI can treat them uniformly as "the ledger disagrees with you".
const (
	ErrCodeUnknown      = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":         http.StatusNotFound,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	// Conflicts with recorded state
	"ALREADY_EXISTS":     http.StatusConflict,
	"LINKED_RESOURCE":    http.StatusConflict,
	"INSUFFICIENT_STOCK": http.StatusConflict,
	"OVERPAYMENT":        http.StatusConflict,
	"SALE_COMPLETED":     http.StatusConflict,
	"INVALID_STATE":      http.StatusConflict,

	"STORAGE_UNAVAILABLE": http.StatusServiceUnavailable,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeUnknown:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code. Validation
// codes (INVALID_*) map to 400; anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
