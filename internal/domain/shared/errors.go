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
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrOverflow          = NewDomainError("ARITHMETIC_OVERFLOW", "Money arithmetic overflowed")
	ErrInvalidMovement   = NewDomainError("INVALID_MOVEMENT", "Stock movement delta is zero or out of bounds")
)

// ValidationError is returned when a value object constructor rejects its input.
// A value that fails construction never exists, so downstream code only ever
// sees validated values.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a new validation error for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IntegrityViolation is returned when an operation would break a cross-entity
// invariant, e.g. attaching a line item to a foreign invoice. The operation
// has no effect.
type IntegrityViolation struct {
	Message string `json:"message"`
}

// Error implements the error interface
func (e *IntegrityViolation) Error() string {
	return e.Message
}

// NewIntegrityViolation creates a new integrity violation error
func NewIntegrityViolation(format string, args ...any) *IntegrityViolation {
	return &IntegrityViolation{Message: fmt.Sprintf(format, args...)}
}

// InvalidTransition is returned when a status state machine rejects a
// transition. From and To carry the offending states.
type InvalidTransition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Error implements the error interface
func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// NewInvalidTransition creates a new invalid transition error
func NewInvalidTransition(from, to string) *InvalidTransition {
	return &InvalidTransition{From: from, To: to}
}

// LedgerInconsistency is reported when the stock movement ledger disagrees
// with reality: a fold over the movements of a product would drive the stock
// below zero, or the reconstructed total does not match the stored stock.
// It indicates a missing or duplicated movement upstream and is surfaced,
// never silently clamped.
type LedgerInconsistency struct {
	ProductID int64  `json:"product_id"`
	Detail    string `json:"detail"`
}

// Error implements the error interface
func (e *LedgerInconsistency) Error() string {
	return fmt.Sprintf("ledger inconsistency for product %d: %s", e.ProductID, e.Detail)
}

// NewLedgerInconsistency creates a new ledger inconsistency error
func NewLedgerInconsistency(productID int64, format string, args ...any) *LedgerInconsistency {
	return &LedgerInconsistency{ProductID: productID, Detail: fmt.Sprintf(format, args...)}
}
