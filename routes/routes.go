package routes

import (
	"os"
	"strings"

	"clinicbook-backend/config"
	"clinicbook-backend/controllers"
	"clinicbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Customer-facing booking flow, no auth
	public := r.Group("/public")
	{
		public.GET("/categories", controllers.GetPublicCategories)
		public.GET("/treatments", controllers.GetPublicTreatments)
		public.GET("/availability", controllers.GetAvailability)
		public.POST("/bookings", controllers.CreatePublicBooking)
		public.POST("/bookings/:id/cancel", controllers.CancelPublicBooking)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Category routes
		categories := api.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.GET("/:id", controllers.GetCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		// Treatment routes
		treatments := api.Group("/treatments")
		{
			treatments.POST("", controllers.CreateTreatment)
			treatments.GET("", controllers.GetTreatments)
			treatments.GET("/:id", controllers.GetTreatment)
			treatments.PUT("/:id", controllers.UpdateTreatment)
			treatments.DELETE("/:id", controllers.DeleteTreatment)
		}

		// Doctor routes
		doctors := api.Group("/doctors")
		{
			doctors.POST("", controllers.CreateDoctor)
			doctors.GET("", controllers.GetDoctors)
			doctors.GET("/:id", controllers.GetDoctor)
			doctors.PUT("/:id", controllers.UpdateDoctor)
			doctors.DELETE("/:id", controllers.DeleteDoctor)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id", controllers.UpdateBooking)
			bookings.PUT("/:id/status", controllers.UpdateBookingStatus)
		}

		api.GET("/availability", controllers.GetAvailability)

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Reminder template routes
		reminders := api.Group("/reminders")
		{
			reminders.POST("/templates", controllers.CreateReminderTemplate)
			reminders.GET("/templates", controllers.GetReminderTemplates)
			reminders.PUT("/templates/:id", controllers.UpdateReminderTemplate)
			reminders.GET("/logs", controllers.GetReminderLogs)
		}

		// Clinic profile routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetClinicProfile)
			profile.PUT("", controllers.UpdateClinicProfile)
			profile.PUT("/working-hours", controllers.UpdateWorkingHours)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}

		// Staff user management, admin only
		users := api.Group("/users", utils.AdminOnly())
		{
			users.GET("", controllers.GetUsers)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}
	}

	return r
}
