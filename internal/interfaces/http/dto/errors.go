package dto

import "net/http"

// API error codes, ERR_<CATEGORY>[_<DETAIL>]
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation       = "ERR_VALIDATION"
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	ErrCodeValidationRange  = "ERR_VALIDATION_RANGE"
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
	ErrCodeBadRequest       = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeRequestTooLarge  = "ERR_REQUEST_TOO_LARGE"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"

	// homepage displays
	ErrCodeInvalidLayout       = "ERR_INVALID_LAYOUT"
	ErrCodeUnknownDisplayKind  = "ERR_UNKNOWN_DISPLAY_KIND"
	ErrCodeDuplicateSubmission = "ERR_DUPLICATE_SUBMISSION"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus is the response status of each API error code
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationFormat: http.StatusBadRequest,
	ErrCodeValidationRange:  http.StatusBadRequest,
	ErrCodeValidationLength: http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidLayout:    http.StatusBadRequest,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,

	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeUnknownDisplayKind: http.StatusNotFound,

	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateSubmission: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
}

// GetHTTPStatus falls back to 500 for codes without a mapping
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping translates shared.DomainError codes to API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"VALIDATION_RANGE":     ErrCodeValidationRange,

	"INVALID_CODE":        ErrCodeValidationFormat,
	"INVALID_NAME":        ErrCodeValidationLength,
	"INVALID_DESCRIPTION": ErrCodeValidationLength,
	"INVALID_WEBSITE":     ErrCodeValidationFormat,
	"ALREADY_ACTIVE":      ErrCodeInvalidState,
	"ALREADY_INACTIVE":    ErrCodeInvalidState,

	"SLOT_OUT_OF_RANGE":    ErrCodeValidationRange,
	"INVALID_SLOT_INPUT":   ErrCodeInvalidInput,
	"INVALID_LAYOUT":       ErrCodeInvalidLayout,
	"UNKNOWN_DISPLAY_KIND": ErrCodeUnknownDisplayKind,
	"CONFLICT_RESOLVED":    ErrCodeInvalidState,
	"DUPLICATE_SUBMISSION": ErrCodeDuplicateSubmission,
}

// NormalizeErrorCode returns API codes and unmapped codes unchanged
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
