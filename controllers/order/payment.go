package orderControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

// Gateway hook, overridable in tests.
var createGatewayOrder = createRazorpayOrder

// createRazorpayOrder registers the amount with the payment gateway and
// returns the gateway-side order id the client needs for checkout.
func createRazorpayOrder(amount float64, receipt string) (string, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return "", fmt.Errorf("razorpay configuration missing")
	}

	client := razorpay.NewClient(keyID, keySecret)
	data := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)), // paise
		"currency": "INR",
		"receipt":  receipt,
	}
	body, err := client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create gateway order: %v", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("gateway returned no order id")
	}
	return id, nil
}

// VerifySignature recomputes the gateway's HMAC-SHA256 over
// "<gatewayOrderID>|<paymentID>" and compares it in constant time against
// the supplied signature.
func VerifySignature(gatewayOrderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /api/orders/verify-payment
//
// On success the order's payment status becomes paid; the order status is
// untouched.
func VerifyPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing payment fields", "error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Where("gateway_order_id = ?", req.RazorpayOrderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}

		// The endpoint is unauthenticated (the signature is the proof), so a
		// settled order must never be regressed by a later bad callback.
		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment already verified"})
			return
		}

		secret := os.Getenv("RAZORPAY_KEY_SECRET")
		if secret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment gateway not configured"})
			return
		}

		if !VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, secret) {
			if err := db.Model(&order).Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update payment status"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment signature mismatch"})
			return
		}

		updates := map[string]interface{}{
			"payment_status":     models.PaymentStatusPaid,
			"gateway_payment_id": req.RazorpayPaymentID,
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update payment status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
	}
}
