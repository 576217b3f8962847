package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/graphuraprojects/Bakery/controllers/user"
	"github.com/graphuraprojects/Bakery/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/api/user/*" endpoints. Requires JWT auth.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	user := api.Group("/user")
	user.Use(middleware.Auth(db))
	{
		user.PUT("/update-profile", userControllers.UpdateProfile(db))
		user.POST("/upload-profile-pic", userControllers.UploadProfilePic(db))
		user.DELETE("/remove-profile-pic", userControllers.RemoveProfilePic(db))
		user.POST("/add-address", userControllers.AddAddress(db))
		user.PUT("/update-address", userControllers.UpdateAddress(db))
		user.PATCH("/add-phone", userControllers.AddPhone(db))
		user.DELETE("/delete-account", userControllers.DeleteAccount(db))
	}
}
