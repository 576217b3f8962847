package routes

import (
	"github.com/gin-gonic/gin"
	contactControllers "github.com/graphuraprojects/Bakery/controllers/contact"
)

// SetupContactRoutes registers the public contact-us endpoint.
func SetupContactRoutes(api *gin.RouterGroup) {
	contact := api.Group("/contact")
	{
		contact.POST("/contact-us", contactControllers.ContactUs())
	}
}
