package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skytrip/config"
	"skytrip/cron"
	"skytrip/database"
	bookingRepoPkg "skytrip/database/repository/booking"
	offerRepoPkg "skytrip/database/repository/offer"
	userRepoPkg "skytrip/database/repository/user"
	"skytrip/handlers"
	"skytrip/middleware"
	"skytrip/routes"
	bookingSvc "skytrip/services/booking"
	"skytrip/services/flights"
	"skytrip/services/resale"
	"skytrip/services/tasks"
	userSvc "skytrip/services/user"
	"skytrip/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	offerRepo := offerRepoPkg.NewMongoOfferRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// task queue.
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	enqueuer := &tasks.AsynqEnqueuer{Client: queueClient}

	// services.
	userService := &userSvc.DefaultUserService{Repo: userRepo}
	bookingService := &bookingSvc.DefaultBookingService{Repo: bookingRepo}
	resaleService := &resale.DefaultResaleService{
		Offers:   offerRepo,
		Bookings: bookingRepo,
		Queue:    enqueuer,
	}
	flightService := &flights.DefaultFlightService{
		Provider: flights.NewHTTPProvider(config.AppConfig.FlightAPIURL, config.AppConfig.FlightAPIKey),
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.FlightCacheTTLMin) * time.Minute,
	}

	// handlers.
	userHandler := handlers.NewUserHandler(userService)
	flightHandler := handlers.NewFlightHandler(flightService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	offerHandler := handlers.NewOfferHandler(resaleService)

	routes.Register(router, userHandler, flightHandler, bookingHandler, offerHandler)

	// Background workers.
	cron.InitReconcileWorker(resaleService)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
