package resale

import (
	"context"
	"errors"

	bookingRepo "skytrip/database/repository/booking"
	offerRepo "skytrip/database/repository/offer"
	"skytrip/models"
	"skytrip/services/booking"
	"skytrip/services/tasks"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseInput carries the buyer's checkout form for a resale listing.
type PurchaseInput struct {
	OfferID   string
	BuyerID   string
	Passenger models.PassengerInfo
	Payment   booking.PaymentForm
}

// Purchase executes the resale transaction as a saga across three documents
// that the store does not update atomically:
//
//  1. fetch listing and original booking, validate the buyer's form
//  2. insert the buyer's new confirmed booking
//  3. claim the offer (conditional set of is_active, the double-sale guard)
//  4. mark the original booking transferred
//
// The new booking is written first so a crash leaves a recoverable state:
// the buyer already owns a valid booking and the stale offer/original flags
// are reconciled by an idempotent background pass. A definitive claim
// failure (lost race, or the seller withdrew the listing) is the one
// destructive case and is compensated by cancelling the booking written in
// step 2.
func (s *DefaultResaleService) Purchase(ctx context.Context, input PurchaseInput) (*models.Booking, error) {
	offer, err := s.getOffer(ctx, input.OfferID)
	if err != nil {
		return nil, err
	}
	if !offer.IsActive {
		return nil, ErrOfferAlreadySold
	}

	original, err := s.Bookings.GetByID(ctx, offer.BookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := booking.ValidatePassenger(input.Passenger); err != nil {
		return nil, err
	}
	if err := booking.ValidatePaymentForm(input.Payment); err != nil {
		return nil, err
	}

	now := s.now()
	// The flight offer is copied from the original booking, not the listing
	// snapshot, to preserve full itinerary fidelity. The charge is the
	// discounted listing price, not a recomputed total.
	newBooking := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      input.BuyerID,
		Reference:   booking.NewBookingReference(),
		BookedAt:    now,
		FlightOffer: original.FlightOffer,
		Passenger:   input.Passenger,
		Payment: models.PaymentInfo{
			Amount:     offer.PriceCurrent,
			CardHolder: input.Payment.CardHolder,
			CardLast4:  models.CardLast4(input.Payment.CardNumber),
			Network:    models.DetectCardNetwork(input.Payment.CardNumber),
			Currency:   offer.Currency,
			PaidAt:     now,
		},
		Status:      models.BookingStatusConfirmed,
		TicketCount: original.TicketCount,
		TravelClass: original.TravelClass,
	}

	if err := s.Bookings.Create(ctx, newBooking); err != nil {
		return nil, err
	}

	if err := s.Offers.Claim(ctx, offer.ID, input.BuyerID, now); err != nil {
		switch {
		case errors.Is(err, offerRepo.ErrNotActive):
			// Another buyer won the race. Cancel the booking written above
			// so the seat is not sold twice.
			s.compensate(ctx, offer, original.ID, newBooking)
			return nil, ErrOfferAlreadySold
		case errors.Is(err, offerRepo.ErrNotFound):
			// The seller withdrew the listing between the read and the
			// claim write. As definitive as a lost race; same compensation.
			s.compensate(ctx, offer, original.ID, newBooking)
			return nil, ErrOfferNotFound
		default:
			// The claim outcome is unknown (for example a store timeout).
			// The purchase stands; hand the bookkeeping to the reconciler.
			return newBooking, s.deferBookkeeping(ctx, offer, original.ID, newBooking, err)
		}
	}

	if err := booking.MarkTransferred(original, input.BuyerID, now); err != nil {
		// The fetched original drifted out of the confirmed state while the
		// listing stayed active. The claim already committed, so this is
		// bookkeeping to settle, not a purchase failure.
		return newBooking, s.deferBookkeeping(ctx, offer, original.ID, newBooking, err)
	}
	if err := s.Bookings.SetTransferred(ctx, original.ID, input.BuyerID, now); err != nil {
		return newBooking, s.deferBookkeeping(ctx, offer, original.ID, newBooking, err)
	}

	zap.L().Info("resale purchase completed",
		zap.String("offerId", offer.ID),
		zap.String("newBookingId", newBooking.ID),
		zap.String("originalBookingId", original.ID),
		zap.String("buyerId", input.BuyerID))
	return newBooking, nil
}

// compensate cancels the buyer's freshly written booking after a definitive
// claim failure. The record is kept (status cancelled) for audit rather than
// deleted. When the cancel write itself fails, a compensation reconcile task
// takes over so the losing booking cannot stay confirmed.
func (s *DefaultResaleService) compensate(ctx context.Context, offer *models.TicketOffer, originalID string, newBooking *models.Booking) {
	if err := s.Bookings.SetStatus(ctx, newBooking.ID, models.BookingStatusCancelled); err != nil {
		zap.L().Error("failed to cancel losing resale booking, scheduling reconcile",
			zap.String("bookingId", newBooking.ID),
			zap.String("offerId", offer.ID),
			zap.Error(err))
		s.enqueueReconcile(ctx, tasks.ResaleReconcilePayload{
			OfferID:           offer.ID,
			OriginalBookingID: originalID,
			NewBookingID:      newBooking.ID,
			BuyerID:           newBooking.UserID,
			Compensate:        true,
		})
	}
}

// deferBookkeeping logs a partial-success purchase and enqueues an
// idempotent reconcile pass. The caller still receives the new booking: the
// purchase itself committed and must never be reported as a failure.
func (s *DefaultResaleService) deferBookkeeping(ctx context.Context, offer *models.TicketOffer, originalID string, newBooking *models.Booking, cause error) error {
	perr := &PartialBookkeepingError{NewBookingID: newBooking.ID, Err: cause}
	zap.L().Error("resale bookkeeping incomplete, scheduling reconcile",
		zap.String("offerId", offer.ID),
		zap.String("newBookingId", newBooking.ID),
		zap.String("originalBookingId", originalID),
		zap.Error(cause))

	s.enqueueReconcile(ctx, tasks.ResaleReconcilePayload{
		OfferID:           offer.ID,
		OriginalBookingID: originalID,
		NewBookingID:      newBooking.ID,
		BuyerID:           newBooking.UserID,
	})
	return perr
}

func (s *DefaultResaleService) enqueueReconcile(ctx context.Context, payload tasks.ResaleReconcilePayload) {
	if s.Queue == nil {
		return
	}
	if err := s.Queue.EnqueueResaleReconcile(ctx, payload); err != nil {
		zap.L().Error("failed to enqueue resale reconcile task",
			zap.String("newBookingId", payload.NewBookingID),
			zap.Error(err))
	}
}

// Reconcile retries the bookkeeping half of a resale purchase. It is keyed
// on the buyer's booking and safe to run any number of times:
//
//   - compensation task: just cancel the buyer's booking, nothing else
//   - offer still active: claim it for the buyer
//   - offer claimed by this buyer (or plainly deactivated): nothing to do
//   - offer claimed by a different buyer: this purchase actually lost the
//     race, cancel the buyer's booking
//
// and finally ensure the original booking is marked transferred.
func (s *DefaultResaleService) Reconcile(ctx context.Context, payload tasks.ResaleReconcilePayload) error {
	if payload.Compensate {
		return s.cancelBooking(ctx, payload.NewBookingID)
	}

	offer, err := s.Offers.GetByID(ctx, payload.OfferID)
	if errors.Is(err, offerRepo.ErrNotFound) {
		// Listing hard-deleted by the seller after the sale; the bookings
		// are still reconcilable.
		offer = nil
	} else if err != nil {
		return err
	}

	if offer != nil {
		if offer.IsActive {
			err := s.Offers.Claim(ctx, offer.ID, payload.BuyerID, s.now())
			if err != nil && !errors.Is(err, offerRepo.ErrNotActive) {
				return err
			}
			// Re-read to learn who holds the claim now.
			offer, err = s.Offers.GetByID(ctx, offer.ID)
			if err != nil {
				return err
			}
		}
		if offer.SoldTo != "" && offer.SoldTo != payload.BuyerID {
			zap.L().Warn("reconcile found offer sold to a different buyer, cancelling booking",
				zap.String("offerId", offer.ID),
				zap.String("newBookingId", payload.NewBookingID))
			return s.cancelBooking(ctx, payload.NewBookingID)
		}
	}

	err = s.Bookings.SetTransferred(ctx, payload.OriginalBookingID, payload.BuyerID, s.now())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookingRepo.ErrNotConfirmed):
		// Already transferred by an earlier pass.
		return nil
	case errors.Is(err, bookingRepo.ErrNotFound):
		zap.L().Error("reconcile: original booking missing",
			zap.String("originalBookingId", payload.OriginalBookingID))
		return nil
	default:
		return err
	}
}

func (s *DefaultResaleService) cancelBooking(ctx context.Context, id string) error {
	err := s.Bookings.SetStatus(ctx, id, models.BookingStatusCancelled)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		zap.L().Error("reconcile: booking to cancel is missing", zap.String("bookingId", id))
		return nil
	}
	return err
}
