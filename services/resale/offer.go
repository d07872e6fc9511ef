package resale

import (
	"context"
	"errors"
	"time"

	bookingRepo "skytrip/database/repository/booking"
	offerRepo "skytrip/database/repository/offer"
	"skytrip/models"
	"skytrip/services/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateOfferInput carries the seller's listing form.
type CreateOfferInput struct {
	BookingID  string
	SellerID   string
	SellerName string
	Price      string // decimal string, strictly below the booking total
	Reason     models.ResaleReason
}

// CreateOffer lists a confirmed booking for resale at a discounted price.
// The route, schedule and prices are snapshotted from the booking's embedded
// flight offer and never re-validated afterwards.
func (s *DefaultResaleService) CreateOffer(ctx context.Context, input CreateOfferInput) (*models.TicketOffer, error) {
	b, err := s.Bookings.GetByID(ctx, input.BookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.UserID != input.SellerID {
		return nil, ErrNotSeller
	}
	if b.Status != models.BookingStatusConfirmed {
		return nil, ErrBookingNotListable
	}
	if departed(b.FlightOffer, s.now()) {
		return nil, ErrBookingNotListable
	}
	if !models.ValidResaleReason(input.Reason) {
		return nil, booking.NewValidationError("reason", "unknown resale reason")
	}

	original, err := booking.TotalPrice(b.FlightOffer, b.TicketCount)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.LessThanOrEqual(decimal.Zero) || price.GreaterThanOrEqual(original) {
		return nil, &InvalidOfferPriceError{Price: input.Price, Original: original.StringFixed(2)}
	}

	offer := &models.TicketOffer{
		ID:               uuid.New().String(),
		SellerID:         input.SellerID,
		SellerName:       input.SellerName,
		BookingID:        b.ID,
		BookingReference: b.Reference,
		TravelClass:      b.TravelClass,
		PriceOriginal:    original.StringFixed(2),
		PriceCurrent:     price.StringFixed(2),
		Currency:         b.FlightOffer.Price.Currency,
		DiscountPercent:  discountPercent(original, price),
		Reason:           input.Reason,
		IsActive:         true,
		CreatedAt:        s.now(),
	}
	snapshotRoute(offer, b.FlightOffer)

	if err := s.Offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	zap.L().Info("resale offer created",
		zap.String("offerId", offer.ID),
		zap.String("bookingId", b.ID),
		zap.String("sellerId", input.SellerID),
		zap.Int("discountPercent", offer.DiscountPercent))
	return offer, nil
}

// DeactivateOffer is the seller's "mark as sold". One-way; a second call
// fails with ErrOfferNotActive and never resurrects the listing.
func (s *DefaultResaleService) DeactivateOffer(ctx context.Context, offerID, sellerID string) error {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.SellerID != sellerID {
		return ErrNotSeller
	}
	err = s.Offers.Deactivate(ctx, offerID)
	if errors.Is(err, offerRepo.ErrNotActive) {
		return ErrOfferNotActive
	}
	return err
}

// DeleteOffer removes a listing entirely, active or not, seller only.
func (s *DefaultResaleService) DeleteOffer(ctx context.Context, offerID, sellerID string) error {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.SellerID != sellerID {
		return ErrNotSeller
	}
	err = s.Offers.Delete(ctx, offerID, sellerID)
	if errors.Is(err, offerRepo.ErrNotFound) {
		return ErrOfferNotFound
	}
	return err
}

// ListActiveOffers returns the open marketplace listings, newest first.
func (s *DefaultResaleService) ListActiveOffers(ctx context.Context) ([]models.TicketOffer, error) {
	return s.Offers.ListActive(ctx)
}

// ListSellerOffers returns all of a seller's listings regardless of state.
func (s *DefaultResaleService) ListSellerOffers(ctx context.Context, sellerID string) ([]models.TicketOffer, error) {
	return s.Offers.ListBySeller(ctx, sellerID)
}

func (s *DefaultResaleService) getOffer(ctx context.Context, offerID string) (*models.TicketOffer, error) {
	offer, err := s.Offers.GetByID(ctx, offerID)
	if errors.Is(err, offerRepo.ErrNotFound) {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}
	return offer, nil
}

// discountPercent truncates ((original-current)/original)*100 to an integer.
func discountPercent(original, current decimal.Decimal) int {
	if original.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct := original.Sub(current).
		Mul(decimal.NewFromInt(100)).
		Div(original).
		Floor()
	return int(pct.IntPart())
}

// snapshotRoute copies the outbound endpoints and flight identity from the
// booking's frozen offer onto the listing.
func snapshotRoute(offer *models.TicketOffer, fo models.FlightOffer) {
	first := fo.FirstSegment()
	last := fo.LastOutboundSegment()
	if first == nil || last == nil {
		return
	}
	offer.From = models.RoutePoint{Code: first.Departure.IataCode, City: first.Departure.City}
	offer.To = models.RoutePoint{Code: last.Arrival.IataCode, City: last.Arrival.City}
	offer.DepartureAt = first.Departure.At
	offer.Airline = fo.ValidatingAirline
	if offer.Airline == "" {
		offer.Airline = first.CarrierCode
	}
	offer.FlightNumber = first.CarrierCode + first.Number
}

// departed reports whether the outbound leg already left. An unparseable
// departure time is treated as not departed so upstream format drift cannot
// block legitimate listings.
func departed(fo models.FlightOffer, now time.Time) bool {
	first := fo.FirstSegment()
	if first == nil {
		return false
	}
	at, err := time.Parse(time.RFC3339, first.Departure.At)
	if err != nil {
		at, err = time.Parse("2006-01-02T15:04:05", first.Departure.At)
		if err != nil {
			return false
		}
	}
	return at.Before(now)
}
