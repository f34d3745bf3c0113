package main

import (
	"fmt"
	"log"
	"os"

	"clinicbook-backend/config"
	"clinicbook-backend/models"
	"clinicbook-backend/routes"
	"clinicbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()
	config.ConnectCache()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Clinic{},
		&models.Customer{},
		&models.Category{},
		&models.Treatment{},
		&models.Doctor{},
		&models.Booking{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	)

	if err := config.EnsureBookingSlotIndex(); err != nil {
		log.Printf("Failed to create booking slot index: %v", err)
	}
}

func main() {

	reminderService := services.NewReminderService(config.DB)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
