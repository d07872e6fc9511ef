package booking

import (
	"time"

	"skytrip/models"
)

// CanTransition reports whether a booking status change is legal. The only
// legal moves are pending -> confirmed and confirmed -> transferred; a
// transferred booking is terminal.
func CanTransition(from, to models.BookingStatus) bool {
	switch from {
	case models.BookingStatusPending:
		return to == models.BookingStatusConfirmed
	case models.BookingStatusConfirmed:
		return to == models.BookingStatusTransferred
	default:
		return false
	}
}

// Transition applies a status change to the booking, failing with
// InvalidStateTransitionError and leaving the booking untouched when the
// move is illegal.
func Transition(b *models.Booking, to models.BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return &InvalidStateTransitionError{From: b.Status, To: to}
	}
	b.Status = to
	return nil
}

// MarkTransferred moves a confirmed booking to transferred and records the
// audit fields. The record is never deleted or moved; it stays readable by
// the original owner for history.
func MarkTransferred(b *models.Booking, buyerID string, at time.Time) error {
	if err := Transition(b, models.BookingStatusTransferred); err != nil {
		return err
	}
	b.TransferredTo = buyerID
	b.TransferredAt = &at
	return nil
}
