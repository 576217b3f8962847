package contactControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/utils"
)

// Mail hook, overridable in tests.
var sendContactMail = utils.SendContactMail

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// POST /api/contact/contact-us
func ContactUs() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
			return
		}

		if err := sendContactMail(req.Name, req.Email, req.Message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully"})
	}
}
