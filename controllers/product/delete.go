package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/gorm"
)

// DeleteProduct removes a product and attempts deletion of every associated
// hosted image. Individual image-deletion failures are logged and do not
// abort the product deletion.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product"})
			}
			return
		}

		for _, publicID := range product.CloudinaryPublicIDs {
			if err := destroyImage(c.Request.Context(), publicID); err != nil {
				log.Printf("❌ Failed to delete hosted image %s: %v", publicID, err)
				continue
			}
			log.Printf("🗑️ Deleted hosted image: %s", publicID)
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}
