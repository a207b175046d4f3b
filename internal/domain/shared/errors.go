package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrPermissionDenied = NewDomainError("PERMISSION_DENIED", "Not authorized to perform this action")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrAlreadyDeleted   = NewDomainError("ALREADY_DELETED", "Resource is already deleted")
	ErrNotDeleted       = NewDomainError("NOT_DELETED", "Resource is not deleted")
)

// ValidationError represents malformed caller input. It is always
// caller-recoverable and never retried automatically.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError is raised when a reservation requests more stock
// than is available. It carries both quantities so callers can build a
// meaningful message. Never retried automatically: retrying without
// re-checking stock under the product lock would be unsafe.
type InsufficientStockError struct {
	Available int64 `json:"available"`
	Requested int64 `json:"requested"`
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// NewInsufficientStockError creates a new insufficient stock error
func NewInsufficientStockError(available, requested int64) *InsufficientStockError {
	return &InsufficientStockError{Available: available, Requested: requested}
}
