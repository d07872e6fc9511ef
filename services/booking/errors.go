package booking

import (
	"errors"
	"fmt"

	"skytrip/models"
)

// ValidationError reports a user-correctable problem with a form field.
// It never follows a write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InvalidStateTransitionError reports an illegal booking status change.
type InvalidStateTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid booking state transition %s -> %s", e.From, e.To)
}

// ErrInvalidPriceFormat signals that the aggregator delivered a price total
// that is not a parseable decimal string.
var ErrInvalidPriceFormat = errors.New("invalid price format")

// ErrNotFound is the service-level booking not-found error.
var ErrNotFound = errors.New("booking not found")
