package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/graphuraprojects/Bakery/controllers/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints (public).
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", authControllers.Register(db))
		auth.POST("/send-otp", authControllers.SendOtp(db))
		auth.POST("/verify-otp", authControllers.VerifyOtp(db))
		auth.POST("/set-username", authControllers.SetUsername(db))
		auth.POST("/login", authControllers.Login(db))
		auth.POST("/logout", authControllers.Logout())
		auth.POST("/forgot-password", authControllers.ForgotPassword(db))
		auth.POST("/reset-password", authControllers.ResetPassword(db))
	}
}
