package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/graphuraprojects/Bakery/controllers/product"
	"github.com/graphuraprojects/Bakery/middleware"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalog endpoints and the
// admin-only product management endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	// Public catalog
	api.GET("/product", productcontroller.GetProducts(db))
	api.GET("/product/single/:id", productcontroller.GetProductByID(db))
	api.GET("/product/options", productcontroller.GetProductOptions())
	api.GET("/featured", productcontroller.GetFeaturedProducts(db))

	// Admin management
	admin := api.Group("/product")
	admin.Use(middleware.AdminAuth(db))
	{
		admin.POST("/create", productcontroller.CreateProduct(db))
		admin.PUT("/update/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/delete/:id", productcontroller.DeleteProduct(db))
	}
}
