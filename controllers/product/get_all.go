package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/gorm"
)

// GetProducts lists the catalog with filtering, search and pagination.
// Query params: category, flavour, min_price, max_price, search, page, limit.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		flavour := c.Query("flavour")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		search := c.Query("search")

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit < 1 {
			limit = 100
		}

		query := db.Model(&models.Product{})

		if category != "" && category != "All" {
			query = query.Where("category = ?", category)
		}
		if flavour != "" && flavour != "All" {
			query = query.Where("flavour = ?", flavour)
		}
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid max_price"})
				return
			}
		}
		if search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(flavour) LIKE ?",
				likePattern, likePattern, likePattern, likePattern,
			)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count products"})
			return
		}

		var products []models.Product
		if err := query.
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
			return
		}

		pages := int(total) / limit
		if int(total)%limit != 0 {
			pages++
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"count":    len(products),
			"total":    total,
			"page":     page,
			"pages":    pages,
			"products": products,
		})
	}
}
