package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/graphuraprojects/Bakery/models"
	"github.com/graphuraprojects/Bakery/utils"
	"gorm.io/gorm"
)

type AdminCredentials struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/admin/super-admin/register
//
// Bootstrap only: succeeds while no super-admin exists. Once one does, new
// admins are created exclusively by an authenticated super-admin.
func RegisterSuperAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminCredentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "error": err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Admin{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check existing admins"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Super admin already exists"})
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
			return
		}

		admin := models.Admin{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Email:    req.Email,
			Password: hashed,
			Role:     models.RoleSuperAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create super admin"})
			return
		}

		token, err := utils.GenerateAdminToken(admin.ID, string(admin.Role))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "admin": admin})
	}
}

// POST /api/admin/login
func AdminLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminCredentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
			return
		}

		var admin models.Admin
		if err := db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Admin not found"})
			return
		}
		if err := utils.CheckPassword(admin.Password, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateAdminToken(admin.ID, string(admin.Role))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "admin": admin})
	}
}

// POST /api/admin/create (super-admin only)
func CreateAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminCredentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "error": err.Error()})
			return
		}

		var existing models.Admin
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Admin already exists"})
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
			return
		}

		admin := models.Admin{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Email:    req.Email,
			Password: hashed,
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create admin"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "admin": admin})
	}
}

// GET /api/admin/admins (super-admin only)
func GetAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []models.Admin
		if err := db.Order("created_at DESC").Find(&admins).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch admins"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "admins": admins})
	}
}

// DELETE /api/admin/:id (super-admin only)
//
// A super-admin cannot delete itself or a peer super-admin.
func DeleteAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID := c.Param("id")
		callerID := c.GetString("admin_id")

		if targetID == callerID {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete your own account"})
			return
		}

		var target models.Admin
		if err := db.First(&target, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Admin not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch admin"})
			return
		}
		if target.Role == models.RoleSuperAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete a super admin"})
			return
		}

		if err := db.Delete(&target).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete admin"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin deleted successfully"})
	}
}

// GET /api/admin/users
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
	}
}

// PATCH /api/admin/user/block/:id
func BlockUnblockUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		user.Blocked = !user.Blocked
		if err := db.Model(&user).Update("blocked", user.Blocked).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
			return
		}

		msg := "User unblocked"
		if user.Blocked {
			msg = "User blocked"
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "blocked": user.Blocked})
	}
}

// DELETE /api/admin/user/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res := db.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
	}
}
