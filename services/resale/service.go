package resale

import (
	"context"
	"time"

	bookingRepo "skytrip/database/repository/booking"
	offerRepo "skytrip/database/repository/offer"
	"skytrip/models"
	"skytrip/services/tasks"
)

// ResaleService defines the marketplace operations: listing a booking,
// managing the listing, and buying someone else's ticket.
type ResaleService interface {
	CreateOffer(ctx context.Context, input CreateOfferInput) (*models.TicketOffer, error)
	DeactivateOffer(ctx context.Context, offerID, sellerID string) error
	DeleteOffer(ctx context.Context, offerID, sellerID string) error
	ListActiveOffers(ctx context.Context) ([]models.TicketOffer, error)
	ListSellerOffers(ctx context.Context, sellerID string) ([]models.TicketOffer, error)
	Purchase(ctx context.Context, input PurchaseInput) (*models.Booking, error)
	Reconcile(ctx context.Context, payload tasks.ResaleReconcilePayload) error
}

// DefaultResaleService implements ResaleService.
type DefaultResaleService struct {
	Offers   offerRepo.OfferRepository
	Bookings bookingRepo.BookingRepository
	Queue    tasks.Enqueuer

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultResaleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var _ ResaleService = (*DefaultResaleService)(nil)
