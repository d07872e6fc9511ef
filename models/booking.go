package models

import "time"

// BookingStatus is the lifecycle state of a Booking.
type BookingStatus string

const (
	// BookingStatusPending marks an in-flight booking that has not been
	// persisted successfully. No pending row survives a failed create.
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusConfirmed is a normal, active booking.
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusTransferred means ownership was sold via a resale offer.
	// The record stays readable by the original owner for history.
	BookingStatusTransferred BookingStatus = "transferred"
	// BookingStatusCancelled is only ever set by the resale purchase
	// compensation path when a buyer loses the claim race.
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed purchase of a flight offer.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	UserID        string        `bson:"user_id" json:"userId"`
	Reference     string        `bson:"reference" json:"reference"` // 2 letters + 4 digits, not unique
	BookedAt      time.Time     `bson:"booked_at" json:"bookedAt"`
	FlightOffer   FlightOffer   `bson:"flight_offer" json:"flightOffer"` // frozen snapshot
	Passenger     PassengerInfo `bson:"passenger" json:"passenger"`
	Payment       PaymentInfo   `bson:"payment" json:"payment"`
	Status        BookingStatus `bson:"status" json:"status"`
	TicketCount   int           `bson:"ticket_count" json:"ticketCount"` // 1..9
	TravelClass   string        `bson:"travel_class" json:"travelClass"`
	TransferredTo string        `bson:"transferred_to,omitempty" json:"transferredTo,omitempty"`
	TransferredAt *time.Time    `bson:"transferred_at,omitempty" json:"transferredAt,omitempty"`
}

// PassengerInfo holds the traveller details attached to a booking.
// Immutable once the booking is created.
type PassengerInfo struct {
	FirstName   string `bson:"first_name" json:"firstName"`
	LastName    string `bson:"last_name" json:"lastName"`
	Email       string `bson:"email" json:"email"`
	Phone       string `bson:"phone" json:"phone"`
	DateOfBirth string `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
}
