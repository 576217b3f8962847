package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

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

const productImageFolder = "products"
const maxProductImages = 5

// CreateProduct creates a new product with hosted images.
// Multipart form: name, price (required), category, flavour, weight, stock,
// description, is_featured, tags (comma separated), images (up to 5 files).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name and price are required"})
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
			return
		}

		stock := 0
		if v := c.PostForm("stock"); v != "" {
			if s, err := strconv.Atoi(v); err == nil {
				stock = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid stock"})
				return
			}
		}

		var tags []string
		if v := c.PostForm("tags"); v != "" {
			for _, tok := range strings.Split(v, ",") {
				if tok = strings.TrimSpace(tok); tok != "" {
					tags = append(tags, tok)
				}
			}
		}

		var images, publicIDs []string
		form, err := c.MultipartForm()
		if err == nil && form != nil {
			files := form.File["images"]
			if len(files) > maxProductImages {
				files = files[:maxProductImages]
			}
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
		}

		product := models.Product{
			Name:                name,
			Description:         c.PostForm("description"),
			Price:               price,
			Category:            c.PostForm("category"),
			Flavour:             c.PostForm("flavour"),
			Weight:              c.PostForm("weight"),
			Stock:               stock,
			Images:              images,
			CloudinaryPublicIDs: publicIDs,
			IsFeatured:          c.PostForm("is_featured") == "true",
			Tags:                tags,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Product creation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}
