package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	"github.com/graphuraprojects/Bakery/utils"
	"gorm.io/gorm"
)

// AdminAuth validates the bearer token against the admins table. The role is
// re-derived from the persisted record on every request; the role claim in
// the token is a client-side UI hint only.
func AdminAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		adminID, _ := claims["id"].(string)
		if adminID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := db.First(&admin, "id = ?", adminID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Admin not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load admin"})
			}
			c.Abort()
			return
		}

		c.Set("admin_id", admin.ID)
		c.Set("admin", admin)
		c.Next()
	}
}

// RequireSuperAdmin must run after AdminAuth.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminVal, exists := c.Get("admin")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin context missing"})
			c.Abort()
			return
		}
		admin, ok := adminVal.(models.Admin)
		if !ok || admin.Role != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Super admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
