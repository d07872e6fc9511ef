package user

import (
	"context"
	"errors"

	"skytrip/models"

	"github.com/google/uuid"
)

// ErrTooManyCards is returned when adding a fourth card to a profile.
var ErrTooManyCards = errors.New("a profile may hold at most 3 saved cards")

// ErrCardNotFound is returned when the referenced saved card is missing.
var ErrCardNotFound = errors.New("saved card not found")

// AddCardInput carries the card form. Only the masked last four digits are
// kept; the full number is used for network detection and discarded.
type AddCardInput struct {
	HolderName  string
	CardNumber  string
	ExpMonth    int
	ExpYear     int
	Nickname    string
	MakeDefault bool
}

// AddCard appends a masked card to the profile. Every mutation re-derives
// the single-default invariant across the whole collection before writing
// it back, so the store is never ambiguous about which card is default.
func (s *DefaultUserService) AddCard(ctx context.Context, userID string, input AddCardInput) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.SavedCards) >= models.MaxSavedCards {
		return nil, ErrTooManyCards
	}

	card := models.SavedCreditCard{
		ID:         uuid.New().String(),
		HolderName: input.HolderName,
		Last4:      models.CardLast4(input.CardNumber),
		ExpMonth:   input.ExpMonth,
		ExpYear:    input.ExpYear,
		Network:    models.DetectCardNetwork(input.CardNumber),
		Nickname:   input.Nickname,
	}
	cards := append(u.SavedCards, card)

	preferred := ""
	if input.MakeDefault || len(cards) == 1 {
		preferred = card.ID
	}
	cards = models.ReconcileDefaultCards(cards, preferred)

	if err := s.Repo.ReplaceCards(ctx, userID, cards); err != nil {
		return nil, err
	}
	u.SavedCards = cards
	return u, nil
}

// RemoveCard deletes a saved card and re-derives the default flag.
func (s *DefaultUserService) RemoveCard(ctx context.Context, userID, cardID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards := make([]models.SavedCreditCard, 0, len(u.SavedCards))
	found := false
	for _, c := range u.SavedCards {
		if c.ID == cardID {
			found = true
			continue
		}
		cards = append(cards, c)
	}
	if !found {
		return nil, ErrCardNotFound
	}
	cards = models.ReconcileDefaultCards(cards, "")

	if err := s.Repo.ReplaceCards(ctx, userID, cards); err != nil {
		return nil, err
	}
	u.SavedCards = cards
	return u, nil
}

// SetDefaultCard marks one card as default and clears the flag everywhere else.
func (s *DefaultUserService) SetDefaultCard(ctx context.Context, userID, cardID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists := false
	for _, c := range u.SavedCards {
		if c.ID == cardID {
			exists = true
			break
		}
	}
	if !exists {
		return nil, ErrCardNotFound
	}
	cards := models.ReconcileDefaultCards(u.SavedCards, cardID)

	if err := s.Repo.ReplaceCards(ctx, userID, cards); err != nil {
		return nil, err
	}
	u.SavedCards = cards
	return u, nil
}
