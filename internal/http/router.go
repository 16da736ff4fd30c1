package http

import (
	"net/http"

	"carrental/internal/config"
	"carrental/internal/http/handlers"
	"carrental/internal/http/middleware"
	"carrental/internal/notifier"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine: middleware chain, auth boundaries and
// the /api route groups.
func NewRouter(env config.Env) *gin.Engine {
	handlers.Configure(env.JWTSecret, notifier.FromEnv(env.AMQPURL))

	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/db-check", handlers.DBCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		cars := api.Group("/cars")
		{
			cars.GET("", handlers.GetCars)
			cars.GET("/available", handlers.GetAvailableCars)
			cars.GET("/search", handlers.SearchCars)
			cars.GET("/:id", handlers.GetCarByID)

			carsAdmin := cars.Group("", middleware.RequireAuth(env.JWTSecret), middleware.RequireAdmin())
			{
				carsAdmin.POST("", handlers.CreateCar)
				carsAdmin.PUT("/:id", handlers.UpdateCar)
				carsAdmin.DELETE("/:id", handlers.DeleteCar)
			}
		}

		users := api.Group("/users", middleware.RequireAuth(env.JWTSecret))
		{
			users.GET("", middleware.RequireAdmin(), handlers.GetUsers)
			users.GET("/:id", handlers.GetUserByID)
		}

		bookings := api.Group("/bookings", middleware.RequireAuth(env.JWTSecret))
		{
			bookings.POST("", handlers.CreateBooking)
			bookings.GET("/my-bookings", handlers.GetMyBookings)
			bookings.GET("/:id", handlers.GetBookingByID)
			bookings.GET("/:id/invoice", handlers.GetBookingInvoicePDF)
			bookings.PATCH("/:id/status", handlers.UpdateBookingStatus)

			bookingsAdmin := bookings.Group("", middleware.RequireAdmin())
			{
				bookingsAdmin.GET("", handlers.GetBookings)
				bookingsAdmin.GET("/car/:carId", handlers.GetBookingsByCar)
				bookingsAdmin.DELETE("/:id", handlers.DeleteBooking)
			}
		}

		payments := api.Group("/payments", middleware.RequireAuth(env.JWTSecret))
		{
			payments.POST("/process", handlers.ProcessPayment)
			payments.GET("/booking/:bookingId", handlers.GetPaymentByBookingID)

			paymentsAdmin := payments.Group("", middleware.RequireAdmin())
			{
				paymentsAdmin.GET("", handlers.GetPayments)
				paymentsAdmin.GET("/:id", handlers.GetPaymentByID)
				paymentsAdmin.POST("/:id/refund", handlers.RefundPayment)
			}
		}
	}

	return r
}
