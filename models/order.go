package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusCreated        OrderStatus = "created"          // Order placed
	OrderStatusConfirmed      OrderStatus = "confirmed"        // Confirmed by the bakery
	OrderStatusPreparing      OrderStatus = "preparing"        // Being baked/packed
	OrderStatusOutForDelivery OrderStatus = "out-for-delivery" // With the courier
	OrderStatusDelivered      OrderStatus = "delivered"        // Customer received the order
	OrderStatusCancelled      OrderStatus = "cancelled"        // Cancelled before dispatch

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"

	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

// orderTransitions is the allowed next-status table for an order. Statuses
// missing a key are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// CanTransitionTo reports whether moving from s to next is a legal step in
// the order lifecycle.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether a customer may still cancel an order in
// status s.
func (s OrderStatus) Cancellable() bool {
	return s.CanTransitionTo(OrderStatusCancelled)
}

// ValidOrderStatus maps a raw string to an OrderStatus.
func ValidOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderStatusCreated, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"uniqueIndex" json:"order_ref"`
	UserID   string `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	// Totals are computed once at creation from catalog prices at that
	// instant and never recomputed from live catalog data.
	Subtotal       float64 `json:"subtotal"`
	Tax            float64 `json:"tax"`
	DeliveryCharge float64 `json:"delivery_charge"`
	TotalAmount    float64 `json:"total_amount"`

	PaymentMethod    string        `json:"payment_method"` // "razorpay" or "cod"
	PaymentStatus    PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Status           OrderStatus   `gorm:"type:VARCHAR(20);default:'created'" json:"status"`
	GatewayOrderID   string        `gorm:"index" json:"gateway_order_id"`
	GatewayPaymentID string        `json:"gateway_payment_id"`

	ShippingAddress Address   `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	IsCustomCake bool    `json:"is_custom_cake"`
	CakeMessage  string  `json:"cake_message"`
}
