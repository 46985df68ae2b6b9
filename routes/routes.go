package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"guesthouse-backend/controllers"
	"guesthouse-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances into the route tree.
func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	hc *controllers.HousekeepingController,
	rvc *controllers.ReviewController,
	cc *controllers.CardController,
) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Login/register are throttled per IP.
		authLimiter := middleware.NewRateLimiter(20, 15*time.Minute)
		auth := api.Group("/auth", authLimiter.Handler())
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.GET("/me", middleware.RequireAuth(), ac.Me)
			auth.POST("/change-password", middleware.RequireAuth(), ac.ChangePassword)
			auth.POST("/forgot-password", ac.ForgotPassword)
			auth.POST("/reset-password", ac.ResetPassword)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/availability", rc.GetAvailability)
			rooms.GET("/:id", rc.GetRoom)

			admin := rooms.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
			{
				admin.POST("", rc.CreateRoom)
				admin.PUT("/:id", rc.UpdateRoom)
				admin.PATCH("/:id", rc.UpdateRoom)
				admin.DELETE("/:id", rc.DeleteRoom)
				admin.PATCH("/:id/housekeeping", hc.UpdateHousekeeping)
			}
		}

		bookings := api.Group("/bookings", middleware.RequireAuth())
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.POST("/:id/check-in", middleware.RequireAdmin(), bc.CheckIn)
			bookings.POST("/:id/check-out", middleware.RequireAdmin(), bc.CheckOut)
		}

		reviews := api.Group("/reviews", middleware.OptionalAuth())
		{
			reviews.GET("", rvc.GetReviews)
			reviews.POST("", middleware.RequireAuth(), rvc.CreateReview)
			reviews.PATCH("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), rvc.ModerateReview)
			reviews.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), rvc.DeleteReview)
		}

		cards := api.Group("/cards", middleware.RequireAuth())
		{
			cards.GET("", cc.GetCards)
			cards.POST("", cc.AddCard)
			cards.DELETE("/:id", cc.DeleteCard)
			cards.POST("/:id/default", cc.SetDefaultCard)
		}

		api.GET("/users", middleware.RequireAuth(), middleware.RequireAdmin(), ac.ListUsers)
	}

	return r
}
