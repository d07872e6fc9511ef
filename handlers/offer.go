package handlers

import (
	"errors"
	"net/http"

	"skytrip/middleware"
	"skytrip/models"
	"skytrip/services/booking"
	"skytrip/services/resale"
	"skytrip/utils"

	"github.com/gin-gonic/gin"
)

// OfferHandler exposes the resale marketplace endpoints.
type OfferHandler struct {
	Service resale.ResaleService
}

func NewOfferHandler(svc resale.ResaleService) *OfferHandler {
	return &OfferHandler{Service: svc}
}

// ListActive returns all open listings.
func (h *OfferHandler) ListActive(c *gin.Context) {
	offers, err := h.Service.ListActiveOffers(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load offers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// ListMine returns the caller's own listings, sold ones included.
func (h *OfferHandler) ListMine(c *gin.Context) {
	offers, err := h.Service.ListSellerOffers(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load offers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// CreateOffer lists one of the caller's bookings for resale.
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var input struct {
		BookingID  string              `json:"bookingId" binding:"required"`
		SellerName string              `json:"sellerName" binding:"required"`
		Price      string              `json:"price" binding:"required"`
		Reason     models.ResaleReason `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	offer, err := h.Service.CreateOffer(c.Request.Context(), resale.CreateOfferInput{
		BookingID:  input.BookingID,
		SellerID:   middleware.CurrentUserID(c),
		SellerName: input.SellerName,
		Price:      input.Price,
		Reason:     input.Reason,
	})
	if err != nil {
		respondResaleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// Deactivate is the seller's "mark as sold".
func (h *OfferHandler) Deactivate(c *gin.Context) {
	err := h.Service.DeactivateOffer(c.Request.Context(), c.Param("offerID"), middleware.CurrentUserID(c))
	if err != nil {
		respondResaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// Delete removes the caller's listing entirely.
func (h *OfferHandler) Delete(c *gin.Context) {
	err := h.Service.DeleteOffer(c.Request.Context(), c.Param("offerID"), middleware.CurrentUserID(c))
	if err != nil {
		respondResaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Purchase buys another traveller's listed ticket. A PartialBookkeepingError
// is deliberately reported as success: the buyer's booking committed and the
// stale flags are an operational concern handled by the reconcile worker.
func (h *OfferHandler) Purchase(c *gin.Context) {
	var input struct {
		Passenger models.PassengerInfo `json:"passenger" binding:"required"`
		Payment   paymentFormInput     `json:"payment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.Purchase(c.Request.Context(), resale.PurchaseInput{
		OfferID:   c.Param("offerID"),
		BuyerID:   middleware.CurrentUserID(c),
		Passenger: input.Passenger,
		Payment:   input.Payment.toForm(),
	})
	var perr *resale.PartialBookkeepingError
	if errors.As(err, &perr) {
		c.JSON(http.StatusCreated, b)
		return
	}
	if err != nil {
		respondResaleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// respondResaleError maps resale service errors onto HTTP statuses.
func respondResaleError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	var pErr *resale.InvalidOfferPriceError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "validation failed", vErr.Error())
	case errors.As(err, &pErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid resale price", pErr.Error())
	case errors.Is(err, resale.ErrOfferNotFound), errors.Is(err, resale.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, resale.ErrOfferAlreadySold):
		utils.JSONError(c, http.StatusConflict, "someone else bought this ticket first", "")
	case errors.Is(err, resale.ErrOfferNotActive):
		utils.JSONError(c, http.StatusConflict, "offer is no longer active", "")
	case errors.Is(err, resale.ErrBookingNotListable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "booking cannot be listed", err.Error())
	case errors.Is(err, resale.ErrNotSeller):
		utils.JSONError(c, http.StatusForbidden, "not your listing", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "request failed", err.Error())
	}
}
