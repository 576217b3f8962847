package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/graphuraprojects/Bakery/controllers/cart"
	"github.com/graphuraprojects/Bakery/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. Requires JWT auth.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.Auth(db))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.PUT("/update/:productId", cartControllers.UpdateCartItem(db))
		cart.DELETE("/remove/:productId", cartControllers.RemoveFromCart(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
	}
}
