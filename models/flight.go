package models

// FlightOffer is a priced itinerary quote returned by the flight aggregator.
// It is embedded (snapshotted) into a Booking at purchase time so that the
// price and schedule the traveller paid for stay frozen.
type FlightOffer struct {
	ID                string      `bson:"id" json:"id"`
	Price             OfferPrice  `bson:"price" json:"price"`
	Itineraries       []Itinerary `bson:"itineraries" json:"itineraries"` // [0] outbound, optional [1] inbound
	ValidatingAirline string      `bson:"validating_airline,omitempty" json:"validatingAirline,omitempty"`
	Cabin             string      `bson:"cabin,omitempty" json:"cabin,omitempty"`
}

// OfferPrice carries the aggregator's price as a decimal string, exactly as
// delivered on the wire.
type OfferPrice struct {
	Total    string `bson:"total" json:"total"`
	Currency string `bson:"currency" json:"currency"`
}

// Itinerary is an ordered, non-empty sequence of flight segments.
type Itinerary struct {
	Duration string    `bson:"duration,omitempty" json:"duration,omitempty"`
	Segments []Segment `bson:"segments" json:"segments"`
}

// Segment is a single carrier-operated leg.
type Segment struct {
	Departure    FlightPoint `bson:"departure" json:"departure"`
	Arrival      FlightPoint `bson:"arrival" json:"arrival"`
	CarrierCode  string      `bson:"carrier_code" json:"carrierCode"`
	Number       string      `bson:"number" json:"number"`
	Duration     string      `bson:"duration,omitempty" json:"duration,omitempty"`
}

// FlightPoint is an endpoint of a segment.
type FlightPoint struct {
	IataCode string `bson:"iata_code" json:"iataCode"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	At       string `bson:"at" json:"at"` // RFC3339 local time as sent by the provider
}

// Outbound returns the first itinerary, which is always the outbound leg.
func (o FlightOffer) Outbound() *Itinerary {
	if len(o.Itineraries) == 0 {
		return nil
	}
	return &o.Itineraries[0]
}

// Inbound returns the return itinerary if the offer is a round trip.
func (o FlightOffer) Inbound() *Itinerary {
	if len(o.Itineraries) < 2 {
		return nil
	}
	return &o.Itineraries[1]
}

// FirstSegment returns the opening segment of the outbound itinerary.
func (o FlightOffer) FirstSegment() *Segment {
	out := o.Outbound()
	if out == nil || len(out.Segments) == 0 {
		return nil
	}
	return &out.Segments[0]
}

// LastOutboundSegment returns the final segment of the outbound itinerary.
func (o FlightOffer) LastOutboundSegment() *Segment {
	out := o.Outbound()
	if out == nil || len(out.Segments) == 0 {
		return nil
	}
	return &out.Segments[len(out.Segments)-1]
}

// SearchQuery captures the parameters of a flight search request.
type SearchQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`                 // YYYY-MM-DD
	ReturnDate  string `json:"returnDate,omitempty"` // empty for one-way
	TicketCount int    `json:"ticketCount"`
	TravelClass string `json:"travelClass"`
}
