package resale

import (
	"errors"
	"fmt"
)

// InvalidOfferPriceError reports a resale price outside (0, originalTotal).
// Surfaced at offer-creation time only; prices are frozen afterwards.
type InvalidOfferPriceError struct {
	Price    string
	Original string
}

func (e *InvalidOfferPriceError) Error() string {
	return fmt.Sprintf("invalid offer price %s: must be above 0 and below the original %s", e.Price, e.Original)
}

// ErrOfferNotFound is returned when the listing does not exist.
var ErrOfferNotFound = errors.New("offer not found")

// ErrBookingNotFound is returned when the originating booking is missing.
var ErrBookingNotFound = errors.New("booking not found")

// ErrOfferAlreadySold is the concurrency-loss error: another buyer claimed
// the offer first. The losing purchase leaves no confirmed booking behind.
var ErrOfferAlreadySold = errors.New("offer was already sold")

// ErrOfferNotActive is returned by deactivation when the offer already is
// inactive. Deactivation is one-way; an offer is never resurrected.
var ErrOfferNotActive = errors.New("offer is no longer active")

// ErrBookingNotListable is returned when the booking being listed is not in
// the confirmed state or its outbound flight has already departed.
var ErrBookingNotListable = errors.New("booking cannot be listed for resale")

// ErrNotSeller is returned when a caller tries to manage a listing they do
// not own.
var ErrNotSeller = errors.New("only the seller may manage this offer")

// PartialBookkeepingError records a purchase that succeeded (the buyer holds
// a confirmed booking) while the follow-up offer/original-booking writes
// failed. It is an operational signal for reconciliation, never surfaced to
// the user as a failure.
type PartialBookkeepingError struct {
	NewBookingID string
	Err          error
}

func (e *PartialBookkeepingError) Error() string {
	return fmt.Sprintf("purchase committed as booking %s but bookkeeping is stale: %v", e.NewBookingID, e.Err)
}

func (e *PartialBookkeepingError) Unwrap() error { return e.Err }
