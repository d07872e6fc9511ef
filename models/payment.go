package models

import (
	"strings"
	"time"
)

// CardNetwork is the detected card scheme.
type CardNetwork string

const (
	CardNetworkVisa       CardNetwork = "visa"
	CardNetworkMastercard CardNetwork = "mastercard"
	CardNetworkAmex       CardNetwork = "amex"
	CardNetworkOther      CardNetwork = "other"
)

// PaymentInfo records what was charged for a booking. Only the masked last
// four digits of the card are ever persisted; the full PAN and CVV never
// leave the request handler.
type PaymentInfo struct {
	Amount     string      `bson:"amount" json:"amount"` // decimal string
	CardHolder string      `bson:"card_holder" json:"cardHolder"`
	CardLast4  string      `bson:"card_last4" json:"cardLast4"`
	Network    CardNetwork `bson:"network" json:"network"`
	Currency   string      `bson:"currency" json:"currency"`
	PaidAt     time.Time   `bson:"paid_at" json:"paidAt"`
}

// DetectCardNetwork classifies a card number by its leading digits:
// '4' visa, '5'/'2' mastercard, "34"/"37" amex, anything else other.
func DetectCardNetwork(number string) CardNetwork {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	switch {
	case digits == "":
		return CardNetworkOther
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return CardNetworkAmex
	case digits[0] == '4':
		return CardNetworkVisa
	case digits[0] == '5', digits[0] == '2':
		return CardNetworkMastercard
	default:
		return CardNetworkOther
	}
}

// CardLast4 returns the last four digits of a card number, ignoring spaces
// and mask characters.
func CardLast4(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
