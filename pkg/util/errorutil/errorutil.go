package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cse-sg/absence-service/internal/store"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Login and profile error kinds. Each renders as a banner on the form that
// raised it and never propagates past that surface.

func NewInvalidOrgCode() error {
	return NewDomainError("INVALID_ORG_CODE", "Invalid organization code", http.StatusUnauthorized, nil)
}

func NewWrongAccessPin() error {
	return NewDomainError("WRONG_ACCESS_PIN", "Incorrect PIN", http.StatusUnauthorized, nil)
}

func NewWrongCurrentPin() error {
	return NewDomainError("WRONG_CURRENT_PIN", "Current PIN is incorrect", http.StatusBadRequest, nil)
}

func NewInvalidNewPin() error {
	return NewDomainError("INVALID_NEW_PIN", "New PIN must be 4 digits", http.StatusBadRequest, nil)
}

func NewPinMismatch() error {
	return NewDomainError("PIN_MISMATCH", "PINs do not match", http.StatusBadRequest, nil)
}

func NewStoreError(err error) error {
	return &DomainError{
		Code:       "STORE_ERROR",
		Message:    "document store operation failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewNetworkUnavailable(err error) error {
	return &DomainError{
		Code:       "NETWORK_UNAVAILABLE",
		Message:    "backend unreachable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, store.ErrNotFound) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewStoreError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "STORE_ERROR",
		Message:    "document store operation failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
