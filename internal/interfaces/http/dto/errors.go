package dto

import "net/http"

// Canonical error codes of the API surface
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Domain codes not
// listed here are business rule violations and map to 422.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeValidation:       http.StatusUnprocessableEntity,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeMethodNotAllowed: http.StatusMethodNotAllowed,

	// Input shape problems detected before any business rule runs
	"INVALID_INPUT": http.StatusBadRequest,
	"INVALID_TOWER": http.StatusBadRequest,
	"INVALID_FLAT":  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for an error code. Unlisted codes are
// treated as business rule violations (422).
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
