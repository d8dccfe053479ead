package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the category of a domain failure so callers and tests can
// branch on it without parsing messages.
type Kind string

const (
	KindDuplicateID         Kind = "duplicate_id"
	KindNotFound            Kind = "not_found"
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidQuantity     Kind = "invalid_quantity"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindInsufficientPayment Kind = "insufficient_payment"
	KindEmptySale           Kind = "empty_sale"
	KindUnauthorized        Kind = "unauthorized"
	KindInternal            Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid username or password"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrEmptySale          = &AppError{Code: http.StatusBadRequest, Kind: KindEmptySale, Message: "No items in current sale"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewNotFoundError creates a not found error for the named resource
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewDuplicateIDError reports an attempt to create an item under an ID that
// is already taken.
func NewDuplicateIDError(id string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateID,
		Message: fmt.Sprintf("Item %s already exists", id),
	}
}

// NewInvalidInputError creates a validation error with a custom message
func NewInvalidInputError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidInput,
		Message: message,
	}
}

// NewInvalidQuantityError reports a non-positive requested quantity.
func NewInvalidQuantityError(qty int) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidQuantity,
		Message: fmt.Sprintf("Quantity must be positive, got %d", qty),
	}
}

// NewInsufficientStockError carries the requested vs. available quantities
// so the caller can render a usable message.
func NewInsufficientStockError(itemID string, requested, available int) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", itemID, requested, available),
	}
}

// NewInsufficientPaymentError reports a payment below the amount due.
func NewInsufficientPaymentError(paid, due float64) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInsufficientPayment,
		Message: fmt.Sprintf("Insufficient payment: %.2f paid, %.2f due", paid, due),
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
