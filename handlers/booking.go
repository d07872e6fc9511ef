package handlers

import (
	"errors"
	"net/http"

	"skytrip/middleware"
	"skytrip/models"
	"skytrip/services/booking"
	"skytrip/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// paymentFormInput is the raw card form. The number and CVV are validated
// and discarded; they never reach a persisted document.
type paymentFormInput struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	CardHolder string `json:"cardHolder" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

func (p paymentFormInput) toForm() booking.PaymentForm {
	return booking.PaymentForm{
		CardNumber: p.CardNumber,
		CardHolder: p.CardHolder,
		Expiry:     p.Expiry,
		CVV:        p.CVV,
	}
}

// CreateBooking turns a flight offer into a confirmed booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		Offer       models.FlightOffer   `json:"offer" binding:"required"`
		Passenger   models.PassengerInfo `json:"passenger" binding:"required"`
		Payment     paymentFormInput     `json:"payment" binding:"required"`
		TicketCount int                  `json:"ticketCount" binding:"required"`
		TravelClass string               `json:"travelClass"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:      middleware.CurrentUserID(c),
		Offer:       input.Offer,
		Passenger:   input.Passenger,
		Payment:     input.Payment.toForm(),
		TicketCount: input.TicketCount,
		TravelClass: input.TravelClass,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking returns one booking, restricted to its owner.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("bookingID"))
	if errors.Is(err, booking.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking", err.Error())
		return
	}
	if b.UserID != middleware.CurrentUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "not your booking", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings returns the caller's bookings. Pass includeTransferred=true
// to also see tickets sold on the resale marketplace.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	includeTransferred := c.Query("includeTransferred") == "true"
	bookings, err := h.Service.ListBookings(c.Request.Context(), middleware.CurrentUserID(c), includeTransferred)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// respondBookingError maps service errors onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	var tErr *booking.InvalidStateTransitionError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "validation failed", vErr.Error())
	case errors.As(err, &tErr):
		utils.JSONError(c, http.StatusConflict, "illegal booking state change", tErr.Error())
	case errors.Is(err, booking.ErrInvalidPriceFormat):
		utils.JSONError(c, http.StatusBadGateway, "offer price unreadable", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
	}
}
