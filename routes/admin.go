package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/graphuraprojects/Bakery/controllers/admin"
	"github.com/graphuraprojects/Bakery/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	admin := api.Group("/admin")

	// Public: bootstrap + login
	admin.POST("/super-admin/register", adminController.RegisterSuperAdmin(db))
	admin.POST("/login", adminController.AdminLogin(db))

	// Any authenticated admin
	authed := admin.Group("")
	authed.Use(middleware.AdminAuth(db))
	{
		authed.GET("/users", adminController.GetUsers(db))
		authed.PATCH("/user/block/:id", adminController.BlockUnblockUser(db))
		authed.DELETE("/user/:id", adminController.DeleteUser(db))
	}

	// Super-admin only
	super := admin.Group("")
	super.Use(middleware.AdminAuth(db), middleware.RequireSuperAdmin())
	{
		super.POST("/create", adminController.CreateAdmin(db))
		super.GET("/admins", adminController.GetAdmins(db))
		super.DELETE("/:id", adminController.DeleteAdmin(db))
	}
}
