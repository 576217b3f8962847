package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/gorm"
)

// GetProductByID returns a single product.
// URL param: /product/single/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve product"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

// GetFeaturedProducts returns up to eight featured products, newest first.
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.
			Where("is_featured = ?", true).
			Order("created_at DESC").
			Limit(8).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch featured products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GetProductOptions returns the static category/flavour/weight lists used by
// the storefront filters.
func GetProductOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"categories": []string{"Cakes", "Desserts", "Pastries", "Custom Cakes", "Cupcakes"},
			"flavours":   []string{"Vanilla", "Chocolate", "Strawberry", "Mango", "Butterscotch"},
			"weights":    []string{"500g", "1kg", "2kg"},
		})
	}
}
