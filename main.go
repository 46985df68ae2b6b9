package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"guesthouse-backend/config"
	"guesthouse-backend/controllers"
	"guesthouse-backend/routes"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	utils.InitLogger()

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	utils.InfoLogger.Info("database connection established, migrations applied")

	// Initialize services
	roomService := services.NewRoomService(db)
	housekeepingService := services.NewHousekeepingService(db)
	bookingService := services.NewBookingService(db, roomService, housekeepingService)
	bookingService.StrictCheckout = utils.EnvBool("CHECKOUT_REQUIRE_CHECKIN")
	authService := services.NewAuthService(db)
	reviewService := services.NewReviewService(db)
	cardService := services.NewCardService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	roomController := controllers.NewRoomController(roomService, bookingService)
	bookingController := controllers.NewBookingController(bookingService)
	housekeepingController := controllers.NewHousekeepingController(housekeepingService)
	reviewController := controllers.NewReviewController(reviewService)
	cardController := controllers.NewCardController(cardService)

	router := routes.SetupRouter(
		authController,
		roomController,
		bookingController,
		housekeepingController,
		reviewController,
		cardController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.InfoLogger.Infof("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	utils.InfoLogger.Info("server stopped gracefully")
}
