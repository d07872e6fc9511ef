package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "skytrip/database/repository/booking"
	"skytrip/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateBookingInput is everything the checkout flow hands over to turn a
// flight offer into a booking.
type CreateBookingInput struct {
	UserID      string
	Offer       models.FlightOffer
	Passenger   models.PassengerInfo
	Payment     PaymentForm
	TicketCount int
	TravelClass string
}

// BookingService defines the booking operations exposed to callers.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string, includeTransferred bool) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo bookingRepo.BookingRepository
}

// CreateBooking validates the passenger and payment forms, prices the offer,
// and persists a confirmed booking with a fresh reference. The pending state
// is a transient in-flight marker only: no pending document survives a
// failed create.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if input.TicketCount < 1 || input.TicketCount > 9 {
		return nil, NewValidationError("ticketCount", "ticket count must be between 1 and 9")
	}
	if err := ValidatePassenger(input.Passenger); err != nil {
		return nil, err
	}
	if err := ValidatePaymentForm(input.Payment); err != nil {
		return nil, err
	}

	total, err := TotalPrice(input.Offer, input.TicketCount)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      input.UserID,
		Reference:   NewBookingReference(),
		BookedAt:    time.Now(),
		FlightOffer: input.Offer,
		Passenger:   input.Passenger,
		Payment: models.PaymentInfo{
			Amount:     total.StringFixed(2),
			CardHolder: input.Payment.CardHolder,
			CardLast4:  models.CardLast4(input.Payment.CardNumber),
			Network:    models.DetectCardNetwork(input.Payment.CardNumber),
			Currency:   input.Offer.Price.Currency,
			PaidAt:     time.Now(),
		},
		Status:      models.BookingStatusConfirmed,
		TicketCount: input.TicketCount,
		TravelClass: input.TravelClass,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	zap.L().Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("reference", b.Reference),
		zap.String("userId", b.UserID))
	return b, nil
}

// GetBooking fetches a booking by id.
func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns a user's bookings, newest first. Transferred bookings
// are kept for history and only returned on request.
func (s *DefaultBookingService) ListBookings(ctx context.Context, userID string, includeTransferred bool) ([]models.Booking, error) {
	return s.Repo.GetByUser(ctx, userID, includeTransferred)
}

// Total returns the booking's total price, falling back to zero when the
// frozen offer snapshot carries a malformed price string.
func Total(b *models.Booking) decimal.Decimal {
	total, err := TotalPrice(b.FlightOffer, b.TicketCount)
	if err != nil {
		zap.L().Warn("booking has malformed price, defaulting to zero",
			zap.String("bookingId", b.ID),
			zap.String("priceTotal", b.FlightOffer.Price.Total))
		return decimal.Zero
	}
	return total
}

var _ BookingService = (*DefaultBookingService)(nil)
