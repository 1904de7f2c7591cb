package main

import (
	"fmt"
	"os"

	"salondesk-backend/config"
	"salondesk-backend/controllers"
	"salondesk-backend/models"
	"salondesk-backend/realtime"
	"salondesk-backend/routes"
	"salondesk-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		config.SLog.Info("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Appointment{},
		&models.Service{},
		&models.Category{},
		&models.Staff{},
		&models.Client{},
		&models.LoyaltyRedemption{},
		&models.Product{},
		&models.Charge{},
		&models.ExpenseCategory{},
		&models.StaffDeduction{},
		&models.AdminRole{},
		&models.BusinessSettings{},
		&models.PushSubscription{},
	)
}

func main() {
	hub := realtime.NewHub()
	go hub.Run()

	notifier := services.NewNotificationService()
	push := services.NewPushService(config.DB)
	controllers.Init(hub, notifier, push)

	greetings := services.NewGreetingService(config.DB, notifier)
	greetings.StartScheduler()

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
