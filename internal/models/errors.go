package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors used throughout the application
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateEntry      = errors.New("duplicate entry")
	ErrVersionConflict     = errors.New("document version conflict")
)

// ErrorKind groups error codes by how callers should react to them.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindForbidden         ErrorKind = "forbidden"
	KindUnavailable       ErrorKind = "unavailable"
	KindConflict          ErrorKind = "conflict"
	KindRateLimited       ErrorKind = "rate_limited"
	KindDownstream        ErrorKind = "downstream"
	KindDownstreamTimeout ErrorKind = "downstream_timeout"
	KindInternal          ErrorKind = "internal"
)

// ErrorCode is a machine-readable error code returned to clients.
type ErrorCode string

const (
	CodeValidationFailed        ErrorCode = "VALIDATION_FAILED"
	CodeNotFound                ErrorCode = "NOT_FOUND"
	CodeMissingToken            ErrorCode = "MISSING_TOKEN"
	CodeInvalidServiceKey       ErrorCode = "INVALID_SERVICE_KEY"
	CodeTokenExpired            ErrorCode = "TOKEN_EXPIRED"
	CodeRefreshTokenExpired     ErrorCode = "REFRESH_TOKEN_EXPIRED"
	CodeInvalidCredentials      ErrorCode = "INVALID_CREDENTIALS"
	CodeForbidden               ErrorCode = "FORBIDDEN"
	CodeEmptyCart               ErrorCode = "EMPTY_CART"
	CodeItemNotFound            ErrorCode = "ITEM_NOT_FOUND"
	CodeOfferingUnavailable     ErrorCode = "OFFERING_UNAVAILABLE"
	CodeCapacityExceeded        ErrorCode = "CAPACITY_EXCEEDED"
	CodePromoInvalid            ErrorCode = "PROMO_INVALID"
	CodeTransactionFrozen       ErrorCode = "TRANSACTION_FROZEN"
	CodeInvalidStatusTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	CodePaymentRejected         ErrorCode = "PAYMENT_REJECTED"
	CodeTicketNotValid          ErrorCode = "TICKET_NOT_VALID"
	CodeDuplicateEntry          ErrorCode = "DUPLICATE_ENTRY"
	CodeConcurrentModification  ErrorCode = "CONCURRENT_MODIFICATION"
	CodeTooManyRequests         ErrorCode = "TOO_MANY_REQUESTS"
	CodeDownstreamUnavailable   ErrorCode = "DOWNSTREAM_UNAVAILABLE"
	CodeDownstreamTimeout       ErrorCode = "DOWNSTREAM_TIMEOUT"
	CodeInternal                ErrorCode = "INTERNAL_ERROR"
)

// Coded errors returned by the cart, auth and ticket flows. AppError.Is
// compares codes, so errors.Is(err, ErrEmptyCart) holds for any EMPTY_CART.
var (
	ErrEmptyCart               = NewError(KindValidation, CodeEmptyCart, "cart is empty")
	ErrItemNotFound            = NewError(KindNotFound, CodeItemNotFound, "item not found in cart")
	ErrOfferingUnavailable     = NewError(KindUnavailable, CodeOfferingUnavailable, "offering is not open for registration")
	ErrCapacityExceeded        = NewError(KindUnavailable, CodeCapacityExceeded, "not enough places left for this offering")
	ErrPromoInvalid            = NewError(KindUnavailable, CodePromoInvalid, "promotion code is invalid or expired")
	ErrTransactionFrozen       = NewError(KindUnavailable, CodeTransactionFrozen, "transaction can no longer be modified")
	ErrInvalidStatusTransition = NewError(KindValidation, CodeInvalidStatusTransition, "status transition is not allowed")
	ErrPaymentRejected         = NewError(KindUnavailable, CodePaymentRejected, "payment was rejected")
	ErrTicketNotValid          = NewError(KindUnavailable, CodeTicketNotValid, "ticket is no longer valid")
	ErrMissingToken            = NewError(KindUnauthorized, CodeMissingToken, "access token is missing")
	ErrInvalidServiceKey       = NewError(KindUnauthorized, CodeInvalidServiceKey, "service credentials are missing or invalid")
	ErrTokenExpired            = NewError(KindUnauthorized, CodeTokenExpired, "session expired")
	ErrRefreshTokenExpired     = NewError(KindUnauthorized, CodeRefreshTokenExpired, "session expired, please log in again")
	ErrInvalidCredentials      = NewError(KindValidation, CodeInvalidCredentials, "invalid credentials")
	ErrForbidden               = NewError(KindForbidden, CodeForbidden, "access denied")
	ErrTooManyRequests         = NewError(KindRateLimited, CodeTooManyRequests, "too many attempts, please try again later")
)

// AppError is the error type surfaced to HTTP clients. Message is safe to
// show; Cause is only logged.
type AppError struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError by code so errors.Is works against the
// constructors below.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus maps the error kind onto a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindUnavailable:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindDownstream:
		return http.StatusBadGateway
	case KindDownstreamTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewError creates an AppError without a cause.
func NewError(kind ErrorKind, code ErrorCode, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// WrapError creates an AppError that keeps the underlying cause for logs.
func WrapError(kind ErrorKind, code ErrorCode, message string, cause error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Cause: cause}
}

// Validation returns a VALIDATION_FAILED error.
func Validation(message string) *AppError {
	return NewError(KindValidation, CodeValidationFailed, message)
}

// NotFound returns a NOT_FOUND error.
func NotFound(message string) *AppError {
	return NewError(KindNotFound, CodeNotFound, message)
}

// Forbidden returns a FORBIDDEN error.
func Forbidden(message string) *AppError {
	return NewError(KindForbidden, CodeForbidden, message)
}

// Internal wraps an unexpected failure. The message never includes the cause.
func Internal(cause error) *AppError {
	return WrapError(KindInternal, CodeInternal, "internal server error", cause)
}

// AsAppError extracts an AppError from err, falling back to a mapping of the
// package sentinels and finally to an internal error.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		return WrapError(KindNotFound, CodeNotFound, "transaction not found", err)
	case errors.Is(err, ErrUserNotFound):
		return WrapError(KindNotFound, CodeNotFound, "user not found", err)
	case errors.Is(err, ErrTicketNotFound):
		return WrapError(KindNotFound, CodeNotFound, "ticket not found", err)
	case errors.Is(err, ErrDuplicateEntry):
		return WrapError(KindValidation, CodeDuplicateEntry, "resource already exists", err)
	case errors.Is(err, ErrVersionConflict):
		return WrapError(KindConflict, CodeConcurrentModification, "transaction was modified concurrently, retry", err)
	case errors.Is(err, ErrInvalidInput):
		return WrapError(KindValidation, CodeValidationFailed, err.Error(), err)
	}
	return Internal(err)
}
