package userRepo

import (
	"context"
	"errors"

	"skytrip/models"
)

// ErrNotFound is returned when no user matches the given id or email.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user profile data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfile overwrites the mutable profile fields (name, phone).
	UpdateProfile(ctx context.Context, id, name, phone string) error
	// ReplaceCards overwrites the whole saved-card array. Card mutations are
	// reconciled in the service and written back as a unit so the
	// one-default invariant is never ambiguous in the store.
	ReplaceCards(ctx context.Context, id string, cards []models.SavedCreditCard) error
}
