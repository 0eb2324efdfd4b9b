package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrItemNotFound    = errors.New("order item not found")
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
)

// ValidationError covers malformed input, including a variant that does not
// belong to the stated product.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError carries enough detail for the caller to render an
// actionable message and retry with a smaller quantity.
type InsufficientStockError struct {
	ProductName string
	VariantName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if e.VariantName != "" {
		name = name + " (" + e.VariantName + ")"
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		name, e.Requested, e.Available)
}

// InvalidStateTransitionError rejects item mutation or cancellation while the
// order status disallows it.
type InvalidStateTransitionError struct {
	Status OrderStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("order in status %q cannot be modified", e.Status)
}

// BusinessRuleError is a rule violation that is not a state problem, such as
// removing the last remaining item.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }
