package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/palmpay-kiosk/controllers"
	"github.com/yeremiapane/palmpay-kiosk/middlewares"
	"github.com/yeremiapane/palmpay-kiosk/services"
)

func SetupRouter(db *gorm.DB, cache *services.EnrollmentCache) *gin.Engine {
	r := gin.Default()

	// middleware must be attached before any route is registered, gin
	// freezes each route's handler chain at registration time
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	productCtrl := controllers.NewProductController(db)
	customerCtrl := controllers.NewCustomerController(db)
	orderCtrl := controllers.NewOrderController(db)
	deviceCtrl := controllers.NewDeviceController(db)
	palmCtrl := controllers.NewPalmController(db, cache)
	userCtrl := controllers.NewUserController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/products", productCtrl.GetAllProducts)
		api.POST("/products", productCtrl.CreateProduct)

		api.GET("/customers", customerCtrl.GetAllCustomers)
		api.POST("/customers", customerCtrl.CreateCustomer)

		api.GET("/orders", orderCtrl.GetAllOrders)
		api.POST("/orders", orderCtrl.CreateOrder)

		palm := api.Group("/palm")
		{
			palm.GET("/devices", deviceCtrl.GetAllDevices)
			palm.PATCH("/devices/:device_id", deviceCtrl.UpdateDevice)
			// next-order is deliberately unauthenticated: any registered or
			// unregistered poller gets the globally oldest pending order
			palm.GET("/next-order", orderCtrl.GetNextPendingOrder)
			palm.POST("/complete-order/:order_id", orderCtrl.CompleteOrder)
		}

		// Registration hands out the bearer secret, keep it behind the
		// strict limiter
		register := api.Group("/palm")
		register.Use(middlewares.NewStrictRateLimiter())
		{
			register.POST("/register", deviceCtrl.RegisterDevice)
		}

		deviceAuth := api.Group("/palm-devices")
		deviceAuth.Use(middlewares.DeviceAuthMiddleware(db))
		{
			deviceAuth.POST("/auth-log", deviceCtrl.CreateDeviceAuthLog)
		}
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/users", userCtrl.GetAllUsers)
		v1.GET("/users/search/by-name", userCtrl.SearchUserByName)
		v1.GET("/users/:user_id", userCtrl.GetUserByID)
		v1.DELETE("/users/:user_id", userCtrl.DeleteUser)
		v1.GET("/users/:user_id/cards", userCtrl.GetUserCards)
		v1.GET("/users/:user_id/auth-logs", userCtrl.GetUserAuthLogs)
		v1.GET("/users/:user_id/auth-history", userCtrl.GetUserAuthLogs)

		v1.GET("/palm/template/:user_id", palmCtrl.GetTemplateByUser)
		v1.POST("/palm/verify", palmCtrl.VerifyPalm)
		v1.POST("/palm/generate-enrollment-qr", palmCtrl.GenerateEnrollmentQR)
		v1.GET("/palm/enrollment/:token", palmCtrl.GetEnrollment)
		v1.GET("/palm/device-logs", deviceCtrl.GetDeviceLogs)
	}

	return r
}
