package models

import "time"

// User is a platform traveller profile.
type User struct {
	ID           string            `bson:"id" json:"id"`
	Name         string            `bson:"name" json:"name"`
	Email        string            `bson:"email" json:"email"`
	Phone        string            `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string            `bson:"password_hash" json:"-"`
	SavedCards   []SavedCreditCard `bson:"saved_cards" json:"savedCards"`
	CreatedAt    time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updatedAt"`
}

// SavedCreditCard is a masked card kept on the user profile for faster
// checkout. It is distinct from PaymentInfo: nothing here is ever charged
// directly and no full PAN is stored.
type SavedCreditCard struct {
	ID         string      `bson:"id" json:"id"`
	HolderName string      `bson:"holder_name" json:"holderName"`
	Last4      string      `bson:"last4" json:"last4"`
	ExpMonth   int         `bson:"exp_month" json:"expMonth"`
	ExpYear    int         `bson:"exp_year" json:"expYear"`
	Network    CardNetwork `bson:"network" json:"network"`
	IsDefault  bool        `bson:"is_default" json:"isDefault"`
	Nickname   string      `bson:"nickname,omitempty" json:"nickname,omitempty"`
}

// MaxSavedCards caps how many cards a profile may hold.
const MaxSavedCards = 3

// ReconcileDefaultCards re-derives the single-default invariant across the
// whole collection: at most one card keeps isDefault=true, preferring the
// card with the given preferred id, then an already-default card, then the
// first card. An empty slice is returned unchanged.
func ReconcileDefaultCards(cards []SavedCreditCard, preferredID string) []SavedCreditCard {
	if len(cards) == 0 {
		return cards
	}
	defaultIdx := -1
	for i := range cards {
		if preferredID != "" && cards[i].ID == preferredID {
			defaultIdx = i
			break
		}
	}
	if defaultIdx == -1 {
		for i := range cards {
			if cards[i].IsDefault {
				defaultIdx = i
				break
			}
		}
	}
	if defaultIdx == -1 {
		defaultIdx = 0
	}
	for i := range cards {
		cards[i].IsDefault = i == defaultIdx
	}
	return cards
}
