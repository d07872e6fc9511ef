package booking

import (
	"strings"

	"skytrip/models"
)

// minCardDigits is the shortest acceptable card number after stripping
// spaces and mask characters.
const minCardDigits = 13

// PaymentForm carries the raw card input from the checkout form. The full
// number and CVV live only for the duration of validation; nothing beyond
// the holder name and masked last four digits is ever persisted.
type PaymentForm struct {
	CardNumber string
	CardHolder string
	Expiry     string
	CVV        string
}

// ValidatePassenger checks the traveller form fields.
func ValidatePassenger(p models.PassengerInfo) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return NewValidationError("firstName", "first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return NewValidationError("lastName", "last name is required")
	}
	if !strings.Contains(p.Email, "@") {
		return NewValidationError("email", "a valid email address is required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return NewValidationError("phone", "phone number is required")
	}
	return nil
}

// ValidatePaymentForm checks the checkout card fields.
func ValidatePaymentForm(f PaymentForm) error {
	digits := countDigits(f.CardNumber)
	if digits < minCardDigits {
		return NewValidationError("cardNumber", "card number is too short")
	}
	if strings.TrimSpace(f.CardHolder) == "" {
		return NewValidationError("cardHolder", "cardholder name is required")
	}
	if strings.TrimSpace(f.Expiry) == "" {
		return NewValidationError("expiry", "expiry date is required")
	}
	if strings.TrimSpace(f.CVV) == "" {
		return NewValidationError("cvv", "security code is required")
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
