package orderControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/gorm"
)

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "rzp-secret"
	sig := signPayment("order_1", "pay_1", secret)

	if !VerifySignature("order_1", "pay_1", sig, secret) {
		t.Error("valid signature should verify")
	}
	if VerifySignature("order_1", "pay_2", sig, secret) {
		t.Error("signature over a different payment id must fail")
	}
	if VerifySignature("order_1", "pay_1", sig, "other-secret") {
		t.Error("signature with the wrong secret must fail")
	}
	if VerifySignature("order_1", "pay_1", "deadbeef", secret) {
		t.Error("garbage signature must fail")
	}
}

func seedGatewayOrder(t *testing.T, db *gorm.DB, gatewayOrderID string) models.Order {
	t.Helper()
	seedUser(t, db, "u1")
	order := models.Order{
		OrderRef:       "20260901-abc",
		UserID:         "u1",
		TotalAmount:    500,
		PaymentMethod:  models.PaymentMethodRazorpay,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.OrderStatusCreated,
		GatewayOrderID: gatewayOrderID,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

func paymentRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/orders/verify-payment", VerifyPayment(db))
	return r
}

func TestVerifyPaymentSuccess(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp-secret")

	db := setupOrderDB(t)
	order := seedGatewayOrder(t, db, "order_rzp_1")
	r := paymentRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/orders/verify-payment", VerifyPaymentRequest{
		RazorpayOrderID:   "order_rzp_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: signPayment("order_rzp_1", "pay_1", "rzp-secret"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var fresh models.Order
	db.First(&fresh, order.ID)
	if fresh.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("expected paid, got %s", fresh.PaymentStatus)
	}
	if fresh.GatewayPaymentID != "pay_1" {
		t.Errorf("expected payment id stored, got %q", fresh.GatewayPaymentID)
	}
	if fresh.Status != models.OrderStatusCreated {
		t.Errorf("order status must be untouched by payment, got %s", fresh.Status)
	}
}

func TestVerifyPaymentSignatureMismatch(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp-secret")

	db := setupOrderDB(t)
	order := seedGatewayOrder(t, db, "order_rzp_1")
	r := paymentRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/orders/verify-payment", VerifyPaymentRequest{
		RazorpayOrderID:   "order_rzp_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: signPayment("order_rzp_1", "pay_1", "wrong-secret"),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var fresh models.Order
	db.First(&fresh, order.ID)
	if fresh.PaymentStatus != models.PaymentStatusFailed {
		t.Errorf("expected failed, got %s", fresh.PaymentStatus)
	}
	if fresh.GatewayPaymentID != "" {
		t.Errorf("payment id must not be stored on mismatch, got %q", fresh.GatewayPaymentID)
	}
}

func TestVerifyPaymentCannotDowngradePaidOrder(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp-secret")

	db := setupOrderDB(t)
	order := seedGatewayOrder(t, db, "order_rzp_1")
	db.Model(&order).Updates(map[string]interface{}{
		"payment_status":     models.PaymentStatusPaid,
		"gateway_payment_id": "pay_1",
	})
	r := paymentRouter(db)

	// The endpoint is open to the world; a garbage signature against a
	// settled order must leave it settled.
	w := doJSON(t, r, http.MethodPost, "/api/orders/verify-payment", VerifyPaymentRequest{
		RazorpayOrderID:   "order_rzp_1",
		RazorpayPaymentID: "pay_2",
		RazorpaySignature: "deadbeef",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for already-paid order, got %d: %s", w.Code, w.Body.String())
	}

	var fresh models.Order
	db.First(&fresh, order.ID)
	if fresh.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("paid order must stay paid, got %s", fresh.PaymentStatus)
	}
	if fresh.GatewayPaymentID != "pay_1" {
		t.Errorf("stored payment id must be untouched, got %q", fresh.GatewayPaymentID)
	}
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp-secret")

	db := setupOrderDB(t)
	r := paymentRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/orders/verify-payment", VerifyPaymentRequest{
		RazorpayOrderID:   "order_missing",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	db := setupOrderDB(t)
	r := paymentRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/orders/verify-payment", map[string]string{
		"razorpay_order_id": "order_rzp_1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
