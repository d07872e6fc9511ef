package resale_test

import (
	"context"
	"testing"
	"time"

	"skytrip/models"
	"skytrip/services/resale"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// confirmedBooking builds a confirmed booking with the given per-ticket
// price and a departure safely in the future.
func confirmedBooking(ownerID, perTicket string, ticketCount int) *models.Booking {
	departure := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	arrival := time.Now().Add(51 * time.Hour).Format(time.RFC3339)
	return &models.Booking{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Reference: "KX4921",
		BookedAt:  time.Now(),
		FlightOffer: models.FlightOffer{
			ID:    "offer-1",
			Price: models.OfferPrice{Total: perTicket, Currency: "EUR"},
			Itineraries: []models.Itinerary{{
				Duration: "PT3H",
				Segments: []models.Segment{{
					Departure:   models.FlightPoint{IataCode: "TXL", City: "Berlin", At: departure},
					Arrival:     models.FlightPoint{IataCode: "FCO", City: "Rome", At: arrival},
					CarrierCode: "LH",
					Number:      "1846",
				}},
			}},
			ValidatingAirline: "LH",
		},
		Passenger: models.PassengerInfo{
			FirstName: "Ada", LastName: "Muster", Email: "ada@example.com", Phone: "+491701234567",
		},
		Payment: models.PaymentInfo{
			Amount: perTicket, CardHolder: "Ada Muster", CardLast4: "4242",
			Network: models.CardNetworkVisa, Currency: "EUR", PaidAt: time.Now(),
		},
		Status:      models.BookingStatusConfirmed,
		TicketCount: ticketCount,
		TravelClass: "ECONOMY",
	}
}

func newService(bookings *fakeBookingRepo, offers *fakeOfferRepo, queue *fakeEnqueuer) *resale.DefaultResaleService {
	return &resale.DefaultResaleService{
		Offers:   offers,
		Bookings: bookings,
		Queue:    queue,
	}
}

func TestCreateOfferPriceBoundaries(t *testing.T) {
	bookings := newFakeBookingRepo()
	offers := newFakeOfferRepo()
	svc := newService(bookings, offers, &fakeEnqueuer{})

	b := confirmedBooking("seller-1", "100.00", 2) // total 200.00
	require.NoError(t, bookings.Create(context.Background(), b))

	baseInput := func(price string) resale.CreateOfferInput {
		return resale.CreateOfferInput{
			BookingID:  b.ID,
			SellerID:   "seller-1",
			SellerName: "Ada",
			Price:      price,
			Reason:     models.ResaleReasonIllness,
		}
	}

	cases := []struct {
		name         string
		price        string
		wantErr      bool
		wantDiscount int
	}{
		{name: "equal to original is rejected", price: "200.00", wantErr: true},
		{name: "above original is rejected", price: "250.00", wantErr: true},
		{name: "zero is rejected", price: "0", wantErr: true},
		{name: "negative is rejected", price: "-5.00", wantErr: true},
		{name: "just below original", price: "199.99", wantDiscount: 0},
		{name: "half price", price: "100.00", wantDiscount: 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offer, err := svc.CreateOffer(context.Background(), baseInput(tc.price))
			if tc.wantErr {
				var pErr *resale.InvalidOfferPriceError
				assert.ErrorAs(t, err, &pErr)
				assert.Nil(t, offer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDiscount, offer.DiscountPercent)
			assert.Equal(t, "200.00", offer.PriceOriginal)
			assert.True(t, offer.IsActive)
		})
	}
}

func TestCreateOfferSnapshotsRoute(t *testing.T) {
	bookings := newFakeBookingRepo()
	offers := newFakeOfferRepo()
	svc := newService(bookings, offers, &fakeEnqueuer{})

	b := confirmedBooking("seller-1", "75.00", 2) // total 150.00
	require.NoError(t, bookings.Create(context.Background(), b))

	offer, err := svc.CreateOffer(context.Background(), resale.CreateOfferInput{
		BookingID:  b.ID,
		SellerID:   "seller-1",
		SellerName: "Ada",
		Price:      "90.00",
		Reason:     models.ResaleReasonIllness,
	})
	require.NoError(t, err)

	assert.Equal(t, "150.00", offer.PriceOriginal)
	assert.Equal(t, "90.00", offer.PriceCurrent)
	assert.Equal(t, 40, offer.DiscountPercent)
	assert.Equal(t, "TXL", offer.From.Code)
	assert.Equal(t, "FCO", offer.To.Code)
	assert.Equal(t, "LH", offer.Airline)
	assert.Equal(t, "LH1846", offer.FlightNumber)
	assert.Equal(t, b.Reference, offer.BookingReference)
	assert.Equal(t, b.ID, offer.BookingID)
}

func TestCreateOfferRejectsNonConfirmedAndForeignBookings(t *testing.T) {
	bookings := newFakeBookingRepo()
	offers := newFakeOfferRepo()
	svc := newService(bookings, offers, &fakeEnqueuer{})

	transferred := confirmedBooking("seller-1", "100.00", 1)
	transferred.Status = models.BookingStatusTransferred
	require.NoError(t, bookings.Create(context.Background(), transferred))

	_, err := svc.CreateOffer(context.Background(), resale.CreateOfferInput{
		BookingID: transferred.ID, SellerID: "seller-1", SellerName: "Ada",
		Price: "50.00", Reason: models.ResaleReasonWork,
	})
	assert.ErrorIs(t, err, resale.ErrBookingNotListable)

	foreign := confirmedBooking("someone-else", "100.00", 1)
	require.NoError(t, bookings.Create(context.Background(), foreign))

	_, err = svc.CreateOffer(context.Background(), resale.CreateOfferInput{
		BookingID: foreign.ID, SellerID: "seller-1", SellerName: "Ada",
		Price: "50.00", Reason: models.ResaleReasonWork,
	})
	assert.ErrorIs(t, err, resale.ErrNotSeller)

	_, err = svc.CreateOffer(context.Background(), resale.CreateOfferInput{
		BookingID: "missing", SellerID: "seller-1", SellerName: "Ada",
		Price: "50.00", Reason: models.ResaleReasonWork,
	})
	assert.ErrorIs(t, err, resale.ErrBookingNotFound)
}

func TestCreateOfferRejectsDepartedFlight(t *testing.T) {
	bookings := newFakeBookingRepo()
	offers := newFakeOfferRepo()
	svc := newService(bookings, offers, &fakeEnqueuer{})

	b := confirmedBooking("seller-1", "100.00", 1)
	b.FlightOffer.Itineraries[0].Segments[0].Departure.At = time.Now().Add(-2 * time.Hour).Format(time.RFC3339)
	require.NoError(t, bookings.Create(context.Background(), b))

	_, err := svc.CreateOffer(context.Background(), resale.CreateOfferInput{
		BookingID: b.ID, SellerID: "seller-1", SellerName: "Ada",
		Price: "50.00", Reason: models.ResaleReasonSchedule,
	})
	assert.ErrorIs(t, err, resale.ErrBookingNotListable)
}

func TestDeactivateOfferIsOneWay(t *testing.T) {
	bookings := newFakeBookingRepo()
	offers := newFakeOfferRepo()
	svc := newService(bookings, offers, &fakeEnqueuer{})

	b := confirmedBooking("seller-1", "100.00", 1)
	require.NoError(t, bookings.Create(context.Background(), b))
	offer, err := svc.CreateOffer(context.Background(), resale.CreateOfferInput{
		BookingID: b.ID, SellerID: "seller-1", SellerName: "Ada",
		Price: "60.00", Reason: models.ResaleReasonOther,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateOffer(context.Background(), offer.ID, "seller-1"))

	err = svc.DeactivateOffer(context.Background(), offer.ID, "seller-1")
	assert.ErrorIs(t, err, resale.ErrOfferNotActive)

	stored, err := offers.GetByID(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestDeleteOfferSellerOnly(t *testing.T) {
	bookings := newFakeBookingRepo()
	offers := newFakeOfferRepo()
	svc := newService(bookings, offers, &fakeEnqueuer{})

	b := confirmedBooking("seller-1", "100.00", 1)
	require.NoError(t, bookings.Create(context.Background(), b))
	offer, err := svc.CreateOffer(context.Background(), resale.CreateOfferInput{
		BookingID: b.ID, SellerID: "seller-1", SellerName: "Ada",
		Price: "60.00", Reason: models.ResaleReasonOther,
	})
	require.NoError(t, err)

	err = svc.DeleteOffer(context.Background(), offer.ID, "intruder")
	assert.ErrorIs(t, err, resale.ErrNotSeller)

	require.NoError(t, svc.DeleteOffer(context.Background(), offer.ID, "seller-1"))

	_, err = svc.ListActiveOffers(context.Background())
	require.NoError(t, err)
	err = svc.DeleteOffer(context.Background(), offer.ID, "seller-1")
	assert.ErrorIs(t, err, resale.ErrOfferNotFound)
}
