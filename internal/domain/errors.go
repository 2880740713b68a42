package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart rejects a checkout without line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrProductUnavailable is returned for products that cannot be bought yet.
	ErrProductUnavailable = errors.New("product not available")
	// ErrPaymentMethodUnsupported is returned for the placeholder gateway path.
	ErrPaymentMethodUnsupported = errors.New("payment method not supported")
	// ErrSubmissionInProgress is returned for a repeated idempotency key whose
	// first submission has not been stored yet. Retrying later is safe.
	ErrSubmissionInProgress = errors.New("order submission in progress, retry shortly")
)

// ValidationError reports invalid input rejected before any external call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// PersistenceError is fatal to an order submission.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save order: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError is logged and never fails a submission.
type NotificationError struct {
	Kind string
	Err  error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s notification failed: %v", e.Kind, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// ConfigurationError names the settings a collaborator is missing.
type ConfigurationError struct {
	Component string
	Missing   []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not configured: missing %s", e.Component, strings.Join(e.Missing, ", "))
}
