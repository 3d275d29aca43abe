package custom_error

import "fmt"

// ValidationError marks input that was rejected before any state changed.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	resource string
	key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.resource, e.key)
}

func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{resource: resource, key: key}
}

// InsufficientStockError is returned when a pickup, reversal or edit would
// drive an item's quantity below zero.
type InsufficientStockError struct {
	item      string
	available int
	requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.item, e.requested, e.available)
}

func NewInsufficientStockError(item string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{item: item, available: available, requested: requested}
}

// PersistenceError wraps a durable-store failure so callers can distinguish
// it from domain failures and decide to retry the save.
type PersistenceError struct {
	op  string
	err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.op, e.err)
}

func (e *PersistenceError) Unwrap() error {
	return e.err
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{op: op, err: err}
}
