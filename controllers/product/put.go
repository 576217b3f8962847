package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/gorm"
)

// UpdateProduct updates an existing product by ID. Accepts the same fields
// as CreateProduct; new images replace the previous set.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("category"); v != "" {
			product.Category = v
		}
		if v := c.PostForm("flavour"); v != "" {
			product.Flavour = v
		}
		if v := c.PostForm("weight"); v != "" {
			product.Weight = v
		}
		if v := c.PostForm("price"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				product.Price = f
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
				return
			}
		}
		if v := c.PostForm("stock"); v != "" {
			if s, err := strconv.Atoi(v); err == nil {
				product.Stock = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid stock"})
				return
			}
		}
		if v := c.PostForm("is_featured"); v != "" {
			product.IsFeatured = v == "true"
		}
		if v := c.PostForm("tags"); v != "" {
			var tags []string
			for _, tok := range strings.Split(v, ",") {
				if tok = strings.TrimSpace(tok); tok != "" {
					tags = append(tags, tok)
				}
			}
			product.Tags = tags
		}

		// Optional replacement images.
		form, err := c.MultipartForm()
		if err == nil && form != nil && len(form.File["images"]) > 0 {
			files := form.File["images"]
			if len(files) > maxProductImages {
				files = files[:maxProductImages]
			}
			var images, publicIDs []string
			for _, file := range files {
				src, err := file.Open()
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read image"})
					return
				}
				url, publicID, err := uploadImage(c.Request.Context(), src, productImageFolder)
				src.Close()
				if err != nil {
					c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Image upload failed", "error": err.Error()})
					return
				}
				images = append(images, url)
				publicIDs = append(publicIDs, publicID)
			}
			product.Images = images
			product.CloudinaryPublicIDs = publicIDs
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Update failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}
