package offerRepo

import (
	"context"
	"errors"
	"time"

	"skytrip/models"
)

// ErrNotFound is returned when no offer matches the given id.
var ErrNotFound = errors.New("offer not found")

// ErrNotActive is returned when a conditional update expected an active
// offer and found it already deactivated.
var ErrNotActive = errors.New("offer is no longer active")

// OfferRepository defines the data access methods for resale listings.
type OfferRepository interface {
	// Create inserts a new ticket offer.
	Create(ctx context.Context, offer *models.TicketOffer) error
	// GetByID retrieves an offer by its unique ID.
	GetByID(ctx context.Context, id string) (*models.TicketOffer, error)
	// ListActive retrieves all active offers, newest first.
	ListActive(ctx context.Context) ([]models.TicketOffer, error)
	// ListBySeller retrieves all of a seller's offers regardless of state.
	ListBySeller(ctx context.Context, sellerID string) ([]models.TicketOffer, error)
	// Claim atomically deactivates an active offer on behalf of a buyer.
	// This conditional write is the double-sale guard: of two concurrent
	// buyers exactly one claim succeeds. Returns ErrNotActive when the
	// offer was already claimed or deactivated, ErrNotFound when it does
	// not exist at all.
	Claim(ctx context.Context, id, buyerID string, at time.Time) error
	// Deactivate flips an active offer to inactive (seller "mark as sold").
	// Returns ErrNotActive if it already is. Never reactivates.
	Deactivate(ctx context.Context, id string) error
	// Delete removes a seller's listing entirely, active or not.
	Delete(ctx context.Context, id, sellerID string) error
}
