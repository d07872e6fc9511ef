package booking

import (
	"fmt"

	"skytrip/models"

	"github.com/shopspring/decimal"
)

// PerTicketPrice parses the offer's total into an exact decimal. A malformed
// price string yields ErrInvalidPriceFormat; callers are expected to fall
// back to zero rather than abort rendering.
func PerTicketPrice(offer models.FlightOffer) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(offer.Price.Total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPriceFormat, offer.Price.Total)
	}
	return d, nil
}

// TotalPrice computes perTicketPrice * ticketCount exactly.
func TotalPrice(offer models.FlightOffer, ticketCount int) (decimal.Decimal, error) {
	per, err := PerTicketPrice(offer)
	if err != nil {
		return decimal.Zero, err
	}
	return per.Mul(decimal.NewFromInt(int64(ticketCount))), nil
}

// FormattedPrice renders an amount with two fixed decimals and its currency,
// e.g. "150.00 EUR".
func FormattedPrice(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}
