package routes

import (
	"os"
	"strings"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/controllers"
	"salondesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// PublicLimiter guards the unauthenticated booking surface. Tests swap it
// for a tighter one.
var PublicLimiter = utils.NewFixedWindowLimiter(30, time.Minute)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Unauthenticated booking page surface, rate limited per address.
	public := r.Group("/api/public")
	public.Use(utils.RateLimitMiddleware(PublicLimiter))
	{
		public.GET("/services", controllers.GetPublicServices)
		public.GET("/staff", controllers.GetPublicStaff)
		public.GET("/appointments", controllers.GetPublicAppointments)
		public.GET("/availability", controllers.GetPublicAvailability)
		public.POST("/appointments", controllers.CreatePublicAppointment)
	}

	// PIN login is outside the session gate.
	r.POST("/api/admin-roles/verify-pin", controllers.VerifyPIN)
	r.POST("/api/admin-roles/logout", controllers.Logout)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		api.GET("/me", controllers.Me)

		// Realtime dashboard events
		if controllers.Hub != nil {
			api.GET("/ws", controllers.Hub.HandleWS)
		}

		appointments := api.Group("/appointments", utils.RequirePermission("appointments"))
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/availability", controllers.GetAvailability)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		services := api.Group("/services", utils.RequirePermission("services"))
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		categories := api.Group("/categories", utils.RequirePermission("services"))
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		staff := api.Group("/staff", utils.RequirePermission("staff"))
		{
			staff.POST("", controllers.CreateStaff)
			staff.GET("", controllers.GetStaff)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
		}

		clients := api.Group("/clients", utils.RequirePermission("clients"))
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.POST("/:id/redeem", controllers.RedeemLoyaltyPoints)
		}
		api.GET("/loyalty-redemptions", utils.RequirePermission("clients"), controllers.GetLoyaltyRedemptions)

		products := api.Group("/products", utils.RequirePermission("inventory"))
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.PUT("/:id", controllers.UpdateProduct)
			products.POST("/:id/adjust", controllers.AdjustProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		charges := api.Group("/charges", utils.RequirePermission("expenses"))
		{
			charges.POST("", controllers.CreateCharge)
			charges.GET("", controllers.GetCharges)
			charges.DELETE("/:id", controllers.DeleteCharge)
		}

		expenseCategories := api.Group("/expense-categories", utils.RequirePermission("expenses"))
		{
			expenseCategories.POST("", controllers.CreateExpenseCategory)
			expenseCategories.GET("", controllers.GetExpenseCategories)
			expenseCategories.DELETE("/:id", controllers.DeleteExpenseCategory)
		}

		deductions := api.Group("/staff-deductions", utils.RequirePermission("expenses"))
		{
			deductions.POST("", controllers.CreateStaffDeduction)
			deductions.GET("", controllers.GetStaffDeductions)
			deductions.DELETE("/:id", controllers.DeleteStaffDeduction)
		}

		api.GET("/payroll", utils.RequirePermission("payroll"), controllers.GetPayrollReport)

		adminRoles := api.Group("/admin-roles", utils.RequirePermission("roles"))
		{
			adminRoles.POST("", controllers.CreateAdminRole)
			adminRoles.GET("", controllers.GetAdminRoles)
			adminRoles.PUT("/:id", controllers.UpdateAdminRole)
			adminRoles.DELETE("/:id", controllers.DeleteAdminRole)
		}

		settings := api.Group("/business-settings", utils.RequirePermission("settings"))
		{
			settings.GET("", controllers.GetBusinessSettings)
			settings.PUT("", controllers.UpdateBusinessSettings)
		}

		api.GET("/export/:entity", utils.RequirePermission("export"), controllers.ExportCSV)

		push := api.Group("/push")
		{
			push.GET("/public-key", controllers.GetPushPublicKey)
			push.POST("/subscribe", controllers.SubscribePush)
			push.POST("/unsubscribe", controllers.UnsubscribePush)
		}
	}

	return r
}
