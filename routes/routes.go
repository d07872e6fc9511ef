package routes

import (
	"time"

	"skytrip/handlers"
	"skytrip/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Register wires all endpoints onto the router.
func Register(
	r *gin.Engine,
	userHandler *handlers.UserHandler,
	flightHandler *handlers.FlightHandler,
	bookingHandler *handlers.BookingHandler,
	offerHandler *handlers.OfferHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.Health)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
	}

	api.GET("/flights/search", flightHandler.Search)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware())
	{
		bookings := authed.Group("/bookings")
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/:bookingID", bookingHandler.GetBooking)
		}

		offers := authed.Group("/offers")
		{
			offers.GET("", offerHandler.ListActive)
			offers.GET("/mine", offerHandler.ListMine)
			offers.POST("", offerHandler.CreateOffer)
			offers.PUT("/:offerID/deactivate", offerHandler.Deactivate)
			offers.DELETE("/:offerID", offerHandler.Delete)
			offers.POST("/:offerID/purchase", offerHandler.Purchase)
		}

		profile := authed.Group("/profile")
		{
			profile.GET("", userHandler.GetProfile)
			profile.PUT("", userHandler.UpdateProfile)
			profile.POST("/cards", userHandler.AddCard)
			profile.DELETE("/cards/:cardID", userHandler.RemoveCard)
			profile.PUT("/cards/:cardID/default", userHandler.SetDefaultCard)
		}
	}
}
