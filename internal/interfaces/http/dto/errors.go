package dto

import (
	"net/http"

	"github.com/institute/backend/internal/domain/shared"
)

// API error codes. Every code is ERR_ prefixed and owns exactly one status.
const (
	ErrCodeInternal            = "ERR_INTERNAL"
	ErrCodeServiceUnavailable  = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeValidation          = "ERR_VALIDATION"
	ErrCodeBadRequest          = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput        = "ERR_INVALID_INPUT"
	ErrCodeRequestTooLarge     = "ERR_REQUEST_TOO_LARGE"
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
	ErrCodeRateLimited         = "ERR_RATE_LIMITED"
)

var statusByCode = map[string]int{
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeServiceUnavailable:  http.StatusServiceUnavailable,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeRateLimited:         http.StatusTooManyRequests,
}

var codeByDomainCode = map[string]string{
	shared.CodeNotFound:            ErrCodeNotFound,
	shared.CodeAlreadyExists:       ErrCodeConflict,
	shared.CodeInvalidInput:        ErrCodeInvalidInput,
	shared.CodeInvalidState:        ErrCodeInvalidState,
	shared.CodeConcurrencyConflict: ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":             ErrCodeValidation,
	"INTERNAL_ERROR":               ErrCodeInternal,
}

// GetHTTPStatus returns the status for an API code, 500 when unknown.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode maps a shared.DomainError code onto its API code.
// Anything else passes through untouched.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := codeByDomainCode[code]; ok {
		return apiCode
	}
	return code
}
