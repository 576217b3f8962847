package authControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/graphuraprojects/Bakery/models"
	"github.com/graphuraprojects/Bakery/utils"
	"gorm.io/gorm"
)

// Delivery channels, overridable in tests.
var (
	sendOTPEmail    = utils.SendOTPEmail
	sendWhatsAppOTP = utils.SendWhatsAppOTP
)

// otpDigits is the length of issued one-time codes.
const otpDigits = 4

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type SendOtpRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VerifyOtpRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Otp     string `json:"otp" binding:"required"`
	Purpose string `json:"purpose"`
}

type SetUsernameRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// issueOtp generates a code, dispatches it over the available channels and
// persists the ledger record. Delivery failure aborts before anything is
// stored.
func issueOtp(db *gorm.DB, email, phone, purpose, name, password string) error {
	code := utils.GenerateOTP(otpDigits)

	if email != "" {
		if err := sendOTPEmail(email, code); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := sendWhatsAppOTP("+91"+phone, code); err != nil {
			return err
		}
	}

	record := models.OtpRecord{
		Email:     email,
		Phone:     phone,
		Code:      code,
		Purpose:   purpose,
		Name:      name,
		Password:  password,
		ExpiresAt: time.Now().Add(models.OtpExpiry),
	}
	return db.Create(&record).Error
}

// POST /api/auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "error": err.Error()})
			return
		}
		if req.Email == "" && req.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email or phone is required"})
			return
		}

		var existing models.User
		err := db.Where("email = ? AND email <> ''", req.Email).
			Or("phone = ? AND phone <> ''", req.Phone).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email or phone already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check existing users"})
			return
		}

		if err := issueOtp(db, req.Email, req.Phone, "", req.Name, req.Password); err != nil {
			log.Printf("❌ Failed to issue registration OTP: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "OTP failed", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully"})
	}
}

// POST /api/auth/send-otp
func SendOtp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil || (req.Email == "" && req.Phone == "") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email or phone is required"})
			return
		}

		if err := issueOtp(db, req.Email, req.Phone, "", "", ""); err != nil {
			log.Printf("❌ Failed to send OTP: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully"})
	}
}

// POST /api/auth/verify-otp
//
// Checks the latest matching code without consuming it; consumption happens
// atomically in the flow that uses the code (set-username, reset-password).
func VerifyOtp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP required"})
			return
		}

		record, err := models.LatestOtp(db, req.Email, req.Phone, req.Purpose)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP not found or expired"})
			return
		}
		if record.Code != req.Otp {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP"})
			return
		}
		if record.Expired(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP expired"})
			return
		}
		if record.Consumed {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP already used"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified", "purpose": record.Purpose})
	}
}

// POST /api/auth/set-username
//
// Finalizes an OTP-verified registration: consumes the pending record,
// creates the user from the staged profile and issues a token.
func SetUsername(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetUsernameRequest
		if err := c.ShouldBindJSON(&req); err != nil || (req.Email == "" && req.Phone == "") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing data"})
			return
		}

		var taken models.User
		if err := db.Where("username = ?", req.Username).First(&taken).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username taken"})
			return
		}

		record, err := models.LatestOtp(db, req.Email, req.Phone, "")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Registration expired"})
			return
		}

		// Single conditional update: a record is usable at most once even
		// when two finalization requests race.
		ok, err := models.ConsumeOtp(db, record.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify registration"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Registration expired"})
			return
		}

		hashed, err := utils.HashPassword(record.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
			return
		}

		user := models.User{
			ID:            uuid.NewString(),
			Name:          record.Name,
			Email:         record.Email,
			Phone:         record.Phone,
			Username:      req.Username,
			Password:      hashed,
			EmailVerified: record.Email != "",
			Cart:          models.Cart{},
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user", "error": err.Error()})
			return
		}

		token, err := utils.GenerateUserToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token"})
			return
		}

		if err := db.Delete(&models.OtpRecord{}, record.ID).Error; err != nil {
			log.Printf("❌ Failed to delete consumed OTP record %d: %v", record.ID, err)
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Registration complete",
			"token":   token,
			"user":    user,
		})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if user.Blocked {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is blocked"})
			return
		}
		if err := utils.CheckPassword(user.Password, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateUserToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
	}
}

// POST /api/auth/logout
//
// Tokens are stateless; logout is a client-side discard.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
	}
}

// POST /api/auth/forgot-password
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		if err := issueOtp(db, req.Email, "", models.OtpPurposeForgotPassword, "", ""); err != nil {
			log.Printf("❌ Failed to issue reset OTP: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email"})
	}
}

// POST /api/auth/reset-password
//
// Requires a live (unconsumed, unexpired) forgot-password OTP for the email;
// the record is consumed atomically before the password changes.
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password fields are required"})
			return
		}
		if req.NewPassword != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Passwords do not match"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		record, err := models.LatestOtp(db, req.Email, "", models.OtpPurposeForgotPassword)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP verification required"})
			return
		}
		ok, err := models.ConsumeOtp(db, record.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP verification required"})
			return
		}

		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
			return
		}
		if err := db.Model(&user).Update("password", hashed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
			return
		}

		// Cleanup all reset codes for this email.
		if err := db.Where("email = ? AND purpose = ?", req.Email, models.OtpPurposeForgotPassword).
			Delete(&models.OtpRecord{}).Error; err != nil {
			log.Printf("❌ Failed to clean up reset OTPs for %s: %v", req.Email, err)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successful"})
	}
}
