package userControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/config"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/gorm"
)

// Image hosting hooks, overridable in tests.
var (
	uploadImage  = config.UploadImage
	destroyImage = config.DestroyImage
)

const profilePicFolder = "profile-pics"

type UpdateProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type AddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	userID := c.GetString("user_id")
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return nil, false
	}
	return &user, true
}

// PUT /api/user/update-profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "error": err.Error()})
			return
		}

		if input.Username != "" && input.Username != user.Username {
			var taken models.User
			if err := db.Where("username = ?", input.Username).First(&taken).Error; err == nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username taken"})
				return
			}
			user.Username = input.Username
		}
		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Email != "" {
			user.Email = input.Email
		}

		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": user})
	}
}

// POST /api/user/upload-profile-pic
func UploadProfilePic(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		file, err := c.FormFile("profilePic")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read file"})
			return
		}
		defer src.Close()

		url, publicID, err := uploadImage(c.Request.Context(), src, profilePicFolder)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Image upload failed", "error": err.Error()})
			return
		}

		// Best-effort removal of the previous picture.
		if user.ProfilePicturePublicID != "" {
			if err := destroyImage(c.Request.Context(), user.ProfilePicturePublicID); err != nil {
				log.Printf("❌ Failed to delete old profile picture %s: %v", user.ProfilePicturePublicID, err)
			}
		}

		user.ProfilePicture = url
		user.ProfilePicturePublicID = publicID
		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save profile picture"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"message":         "Profile picture uploaded",
			"profile_picture": user.ProfilePicture,
			"user":            user,
		})
	}
}

// DELETE /api/user/remove-profile-pic
func RemoveProfilePic(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		if user.ProfilePicture == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No profile picture to remove"})
			return
		}

		if user.ProfilePicturePublicID != "" {
			if err := destroyImage(c.Request.Context(), user.ProfilePicturePublicID); err != nil {
				log.Printf("❌ Failed to delete profile picture %s: %v", user.ProfilePicturePublicID, err)
			}
		}

		user.ProfilePicture = ""
		user.ProfilePicturePublicID = ""
		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove profile picture"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile picture removed successfully"})
	}
}

// POST /api/user/add-address
func AddAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil ||
			input.Street == "" || input.City == "" || input.State == "" || input.Pincode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All address fields required"})
			return
		}

		user.Address = models.Address{
			Street:  input.Street,
			City:    input.City,
			State:   input.State,
			Pincode: input.Pincode,
		}
		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address added successfully", "address": user.Address})
	}
}

// PUT /api/user/update-address
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
			return
		}

		if input.Street != "" {
			user.Address.Street = input.Street
		}
		if input.City != "" {
			user.Address.City = input.City
		}
		if input.State != "" {
			user.Address.State = input.State
		}
		if input.Pincode != "" {
			user.Address.Pincode = input.Pincode
		}

		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address updated successfully", "address": user.Address})
	}
}

// PATCH /api/user/add-phone
func AddPhone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input struct {
			Phone string `json:"phone" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number required"})
			return
		}

		user.Phone = input.Phone
		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update phone"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Phone number updated successfully", "phone": user.Phone})
	}
}

// DELETE /api/user/delete-account
func DeleteAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		res := db.Delete(&models.User{}, "id = ?", userID)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete account"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
	}
}
