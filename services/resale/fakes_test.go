package resale_test

import (
	"context"
	"sync"
	"time"

	bookingRepo "skytrip/database/repository/booking"
	offerRepo "skytrip/database/repository/offer"
	"skytrip/models"
	"skytrip/services/tasks"
)

// fakeBookingRepo is an in-memory BookingRepository. Mutations take a mutex
// so concurrency tests exercise the same conditional-write semantics the
// Mongo implementation has.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	failCreate      error
	failTransferred error
	failStatus      error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByUser(ctx context.Context, userID string, includeTransferred bool) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		switch b.Status {
		case models.BookingStatusConfirmed:
			out = append(out, *b)
		case models.BookingStatusTransferred:
			if includeTransferred {
				out = append(out, *b)
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) SetTransferred(ctx context.Context, id, buyerID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTransferred != nil {
		return r.failTransferred
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != models.BookingStatusConfirmed {
		return bookingRepo.ErrNotConfirmed
	}
	b.Status = models.BookingStatusTransferred
	b.TransferredTo = buyerID
	b.TransferredAt = &at
	return nil
}

func (r *fakeBookingRepo) SetStatus(ctx context.Context, id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failStatus != nil {
		return r.failStatus
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	return nil
}

// statusOf is a test helper reading a booking status directly.
func (r *fakeBookingRepo) statusOf(id string) models.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		return b.Status
	}
	return ""
}

// countByStatus is a test helper counting stored bookings in a given status.
func (r *fakeBookingRepo) countByStatus(status models.BookingStatus) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bookings {
		if b.Status == status {
			n++
		}
	}
	return n
}

// fakeOfferRepo is an in-memory OfferRepository with a compare-and-set
// Claim, mirroring the conditional FindOneAndUpdate of the Mongo store.
type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[string]*models.TicketOffer

	failClaim error
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]*models.TicketOffer)}
}

func (r *fakeOfferRepo) Create(ctx context.Context, o *models.TicketOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *o
	r.offers[o.ID] = &copied
	return nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id string) (*models.TicketOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, offerRepo.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOfferRepo) ListActive(ctx context.Context) ([]models.TicketOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TicketOffer
	for _, o := range r.offers {
		if o.IsActive {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) ListBySeller(ctx context.Context, sellerID string) ([]models.TicketOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TicketOffer
	for _, o := range r.offers {
		if o.SellerID == sellerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) Claim(ctx context.Context, id, buyerID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failClaim != nil {
		return r.failClaim
	}
	o, ok := r.offers[id]
	if !ok {
		return offerRepo.ErrNotFound
	}
	if !o.IsActive {
		return offerRepo.ErrNotActive
	}
	o.IsActive = false
	o.SoldTo = buyerID
	o.SoldAt = &at
	return nil
}

func (r *fakeOfferRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return offerRepo.ErrNotFound
	}
	if !o.IsActive {
		return offerRepo.ErrNotActive
	}
	o.IsActive = false
	return nil
}

func (r *fakeOfferRepo) Delete(ctx context.Context, id, sellerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok || o.SellerID != sellerID {
		return offerRepo.ErrNotFound
	}
	delete(r.offers, id)
	return nil
}

// fakeEnqueuer records reconcile payloads instead of talking to redis.
type fakeEnqueuer struct {
	mu       sync.Mutex
	payloads []tasks.ResaleReconcilePayload
}

func (e *fakeEnqueuer) EnqueueResaleReconcile(ctx context.Context, payload tasks.ResaleReconcilePayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.payloads = append(e.payloads, payload)
	return nil
}
