package models

import "time"

// ResaleReason explains why a seller is giving up the ticket.
type ResaleReason string

const (
	ResaleReasonIllness   ResaleReason = "illness"
	ResaleReasonWork      ResaleReason = "work"
	ResaleReasonEmergency ResaleReason = "emergency"
	ResaleReasonSchedule  ResaleReason = "schedule"
	ResaleReasonOther     ResaleReason = "other"
)

// ValidResaleReason reports whether r is one of the known reasons.
func ValidResaleReason(r ResaleReason) bool {
	switch r {
	case ResaleReasonIllness, ResaleReasonWork, ResaleReasonEmergency, ResaleReasonSchedule, ResaleReasonOther:
		return true
	}
	return false
}

// RoutePoint is one end of the offered route.
type RoutePoint struct {
	Code string `bson:"code" json:"code"`
	City string `bson:"city,omitempty" json:"city,omitempty"`
}

// TicketOffer is a resale listing created from exactly one booking. Route,
// schedule and prices are snapshots taken at listing time and never
// re-validated afterwards.
type TicketOffer struct {
	ID               string       `bson:"id" json:"id"`
	SellerID         string       `bson:"seller_id" json:"sellerId"`
	SellerName       string       `bson:"seller_name" json:"sellerName"`
	BookingID        string       `bson:"booking_id" json:"bookingId"`
	BookingReference string       `bson:"booking_reference" json:"bookingReference"`
	From             RoutePoint   `bson:"from" json:"from"`
	To               RoutePoint   `bson:"to" json:"to"`
	DepartureAt      string       `bson:"departure_at" json:"departureAt"`
	Airline          string       `bson:"airline" json:"airline"`
	FlightNumber     string       `bson:"flight_number" json:"flightNumber"`
	TravelClass      string       `bson:"travel_class" json:"travelClass"`
	PriceOriginal    string       `bson:"price_original" json:"priceOriginal"` // booking total at listing time
	PriceCurrent     string       `bson:"price_current" json:"priceCurrent"`   // seller-chosen, < original
	Currency         string       `bson:"currency" json:"currency"`
	DiscountPercent  int          `bson:"discount_percent" json:"discountPercent"`
	Reason           ResaleReason `bson:"reason" json:"reason"`
	IsActive         bool         `bson:"is_active" json:"isActive"`
	CreatedAt        time.Time    `bson:"created_at" json:"createdAt"`
	SoldTo           string       `bson:"sold_to,omitempty" json:"soldTo,omitempty"`
	SoldAt           *time.Time   `bson:"sold_at,omitempty" json:"soldAt,omitempty"`
}
