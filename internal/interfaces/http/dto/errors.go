package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request fields fail validation
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeInvalidID is used when a path id is not a UUID
	ErrCodeInvalidID = "INVALID_ID"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeRateLimited is used when a client exceeds the request budget
	ErrCodeRateLimited = "RATE_LIMITED"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountLocked      = "ACCOUNT_LOCKED"
	ErrCodeAccountInactive    = "ACCOUNT_INACTIVE"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInvalidState  = "INVALID_STATE"
)

// Dependency error codes
const (
	// ErrCodePDFUnavailable is used when the PDF renderer is disabled
	ErrCodePDFUnavailable = "PDF_UNAVAILABLE"
	// ErrCodeStorageUnavailable is used when receipt storage is disabled
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidID:       http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountLocked:      http.StatusUnauthorized,
	ErrCodeAccountInactive:    http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,

	ErrCodePDFUnavailable:     http.StatusServiceUnavailable,
	ErrCodeStorageUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorCodeAliases folds domain codes that share a response shape onto the
// public code set
var errorCodeAliases = map[string]string{
	"INVALID_INPUT":       ErrCodeValidation,
	"VALIDATION_FAILED":   ErrCodeValidation,
	"INVALID_PERIOD":      ErrCodeValidation,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
	"DB_ERROR":            ErrCodeInternal,
	"INVALID_TOKEN":       ErrCodeTokenInvalid,
	"RATE_LIMIT_EXCEEDED": ErrCodeRateLimited,
}

// NormalizeErrorCode returns the public code for a domain code. Codes that
// are neither public nor aliased are returned unchanged and map to 500.
func NormalizeErrorCode(code string) string {
	if alias, ok := errorCodeAliases[code]; ok {
		return alias
	}
	return code
}
