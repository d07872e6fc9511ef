package handlers

import (
	"net/http"
	"strconv"

	"skytrip/models"
	"skytrip/services/flights"
	"skytrip/utils"

	"github.com/gin-gonic/gin"
)

// FlightHandler exposes flight search.
type FlightHandler struct {
	Service flights.FlightService
}

func NewFlightHandler(svc flights.FlightService) *FlightHandler {
	return &FlightHandler{Service: svc}
}

// Search looks up priced offers from the aggregator. Provider outages show
// up as an empty result, never as an error.
func (h *FlightHandler) Search(c *gin.Context) {
	ticketCount, err := strconv.Atoi(c.DefaultQuery("ticketCount", "1"))
	if err != nil || ticketCount < 1 || ticketCount > 9 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "ticketCount must be between 1 and 9")
		return
	}

	query := models.SearchQuery{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		ReturnDate:  c.Query("returnDate"),
		TicketCount: ticketCount,
		TravelClass: c.DefaultQuery("travelClass", "ECONOMY"),
	}
	if query.Origin == "" || query.Destination == "" || query.Date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "origin, destination and date are required")
		return
	}

	offers, err := h.Service.Search(c.Request.Context(), query)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "flight search failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}
