package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/graphuraprojects/Bakery/controllers/order"
	"github.com/graphuraprojects/Bakery/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers user order endpoints and the admin order
// management surface.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")

	// Gateway callback carries its own proof (the signature); no bearer
	// token required.
	orders.POST("/verify-payment", orderControllers.VerifyPayment(db))

	user := orders.Group("")
	user.Use(middleware.Auth(db))
	{
		user.POST("/create", orderControllers.CreateOrder(db))
		user.GET("/my", orderControllers.GetMyOrders(db))
		user.GET("/:id", orderControllers.GetOrderByID(db))
		user.PUT("/cancel/:id", orderControllers.CancelOrder(db))
	}

	admin := orders.Group("/admin")
	admin.Use(middleware.AdminAuth(db))
	{
		admin.GET("/all", orderControllers.GetAllOrders(db))
		admin.GET("/stats", orderControllers.GetOrderStats(db))
		admin.GET("/export", orderControllers.ExportOrdersToExcel(db))
		admin.GET("/ws", orderControllers.OrderWebSocketHandler)
		admin.PUT("/status/:id", orderControllers.UpdateOrderStatus(db))
		admin.DELETE("/:id", orderControllers.DeleteOrder(db))
	}
}
