package user

import (
	"context"
	"errors"
	"time"

	userRepo "skytrip/database/repository/user"
	"skytrip/models"
	"skytrip/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned when registering with an email already in use.
var ErrEmailTaken = errors.New("email is already registered")

// ErrInvalidCredentials is returned on a failed sign-in.
var ErrInvalidCredentials = errors.New("invalid email or password")

// tokenTTL is how long issued session tokens stay valid.
const tokenTTL = 72 * time.Hour

// UserService defines profile and authentication operations.
type UserService interface {
	Register(ctx context.Context, name, email, phone, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (string, *models.User, error)
	GetProfile(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*models.User, error)
	AddCard(ctx context.Context, userID string, input AddCardInput) (*models.User, error)
	RemoveCard(ctx context.Context, userID, cardID string) (*models.User, error)
	SetDefaultCard(ctx context.Context, userID, cardID string) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a profile with a bcrypt password hash.
func (s *DefaultUserService) Register(ctx context.Context, name, email, phone, password string) (*models.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		SavedCards:   []models.SavedCreditCard{},
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	zap.L().Info("user registered", zap.String("userId", u.ID))
	return u, nil
}

// Authenticate verifies credentials and issues a session token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, userRepo.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// GetProfile fetches a user by id.
func (s *DefaultUserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProfile overwrites the mutable profile fields and returns the
// refreshed document.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id, name, phone string) (*models.User, error) {
	if err := s.Repo.UpdateProfile(ctx, id, name, phone); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}
