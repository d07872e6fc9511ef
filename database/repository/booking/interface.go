package bookingRepo

import (
	"context"
	"errors"
	"time"

	"skytrip/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrNotConfirmed is returned when a conditional status update finds the
// booking in a state other than confirmed.
var ErrNotConfirmed = errors.New("booking is not confirmed")

// BookingRepository defines the data access methods for booking documents.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByUser retrieves a user's bookings, newest first. Transferred and
	// cancelled bookings are filtered out unless includeTransferred is set.
	GetByUser(ctx context.Context, userID string, includeTransferred bool) ([]models.Booking, error)
	// SetTransferred flips a confirmed booking to transferred, recording the
	// buyer and transfer time. Returns ErrNotConfirmed if the booking is in
	// any other state, ErrNotFound if it does not exist.
	SetTransferred(ctx context.Context, id, buyerID string, at time.Time) error
	// SetStatus overwrites the booking status unconditionally. Used only by
	// the resale purchase compensation path.
	SetStatus(ctx context.Context, id string, status models.BookingStatus) error
}
