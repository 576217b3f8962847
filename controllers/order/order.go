package orderControllers

import (
	"errors"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID    uint   `json:"product_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	IsCustomCake bool   `json:"is_custom_cake"`
	CakeMessage  string `json:"cake_message"`
}

type CreateOrderRequest struct {
	// Empty items means "order my cart".
	Items         []OrderItemInput `json:"items"`
	Address       models.Address   `json:"address"`
	PaymentMethod string           `json:"payment_method" binding:"required"`
}

type outOfStockError struct {
	productName string
}

func (e outOfStockError) Error() string {
	return "insufficient stock for product: " + e.productName
}

// round2 rounds a money amount to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func taxRate() float64 {
	if v := os.Getenv("TAX_RATE"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			return r
		}
	}
	return 0.05
}

func deliveryCharge(subtotal float64) float64 {
	charge := 49.0
	freeAbove := 999.0
	if v := os.Getenv("DELIVERY_CHARGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			charge = f
		}
	}
	if v := os.Getenv("FREE_DELIVERY_ABOVE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			freeAbove = f
		}
	}
	if subtotal >= freeAbove {
		return 0
	}
	return charge
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// findOrder resolves a path parameter that may be a numeric order id or an
// order reference. The two columns are queried separately: binding a
// reference string against the numeric id column is a cast error on
// postgres.
func findOrder(db *gorm.DB, param string) (*models.Order, error) {
	query := db.Where("order_ref = ?", param)
	if _, err := strconv.ParseUint(param, 10, 64); err == nil {
		query = db.Where("id = ?", param)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// buildOrder resolves the requested line items against the live catalog,
// snapshots names/prices/images and computes the totals once. The returned
// order is not yet persisted.
func buildOrder(db *gorm.DB, userID string, items []OrderItemInput, address models.Address, paymentMethod string) (*models.Order, error) {
	var orderItems []models.OrderItem
	var subtotal float64

	for _, in := range items {
		var product models.Product
		if err := db.First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, outOfStockError{productName: "product " + strconv.Itoa(int(in.ProductID))}
			}
			return nil, err
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}

		subtotal += product.Price * float64(in.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: image,
			Price:        product.Price,
			Quantity:     in.Quantity,
			IsCustomCake: in.IsCustomCake,
			CakeMessage:  in.CakeMessage,
		})
	}

	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRate())
	delivery := deliveryCharge(subtotal)

	return &models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          userID,
		Items:           orderItems,
		Subtotal:        subtotal,
		Tax:             tax,
		DeliveryCharge:  delivery,
		TotalAmount:     round2(subtotal + tax + delivery),
		PaymentMethod:   paymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusCreated,
		ShippingAddress: address,
	}, nil
}

// persistOrder writes the order inside one transaction. Stock is taken with
// an atomic conditional decrement per line item; a decrement that affects
// zero rows means the stock ran out and the whole transaction rolls back.
func persistOrder(db *gorm.DB, order *models.Order, clearCartID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return outOfStockError{productName: item.ProductName}
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if clearCartID != 0 {
			if err := tx.Where("cart_id = ?", clearCartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// POST /api/orders/create
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "error": err.Error()})
			return
		}
		if req.PaymentMethod != models.PaymentMethodRazorpay && req.PaymentMethod != models.PaymentMethodCOD {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unsupported payment method"})
			return
		}
		if req.Address.Street == "" || req.Address.City == "" || req.Address.State == "" || req.Address.Pincode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All address fields required"})
			return
		}

		items := req.Items
		var clearCartID uint
		if len(items) == 0 {
			var cart models.Cart
			if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil || len(cart.Items) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
				return
			}
			for _, item := range cart.Items {
				items = append(items, OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
			}
			clearCartID = cart.CartID
		}

		order, err := buildOrder(db, userID, items, req.Address, req.PaymentMethod)
		if err != nil {
			var oos outOfStockError
			if errors.As(err, &oos) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": oos.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
			return
		}

		if req.PaymentMethod == models.PaymentMethodRazorpay {
			gatewayOrderID, err := createGatewayOrder(order.TotalAmount, order.OrderRef)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway error", "error": err.Error()})
				return
			}
			order.GatewayOrderID = gatewayOrderID
		}

		if err := persistOrder(db, order, clearCartID); err != nil {
			var oos outOfStockError
			if errors.As(err, &oos) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": oos.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
			return
		}

		broadcastOrderEvent("order.created", *order)
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

// GET /api/orders/my
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// GET /api/orders/:id
//
// Accepts a numeric id or an order reference; the caller must own the order.
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		id := c.Param("id")

		order, err := findOrder(db.Preload("Items"), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not your order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// PUT /api/orders/cancel/:id
//
// Permitted only while the order is still cancellable per the lifecycle
// table. No stock restoration.
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		id := c.Param("id")

		order, err := findOrder(db, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not your order"})
			return
		}
		if !order.Status.Cancellable() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Order can no longer be cancelled (status: " + string(order.Status) + ")",
			})
			return
		}

		if err := db.Model(order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel order"})
			return
		}
		order.Status = models.OrderStatusCancelled

		broadcastOrderEvent("order.status", *order)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled", "order": order})
	}
}
