package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{})
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func cartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/cart", asUser(userID))
	grp.GET("", GetCart(db))
	grp.POST("/add", AddToCart(db))
	grp.PUT("/update/:productId", UpdateCartItem(db))
	grp.DELETE("/remove/:productId", RemoveFromCart(db))
	grp.DELETE("/clear", ClearCart(db))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: 10, Images: []string{"https://img/" + name + ".jpg"}}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

func cartItems(t *testing.T, r *gin.Engine) []models.CartItem {
	t.Helper()
	w := do(t, r, http.MethodGet, "/api/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get cart: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.Items
}

func TestGetCartEmpty(t *testing.T) {
	db := setupCartDB(t)
	r := cartRouter(db, "u1")

	if items := cartItems(t, r); len(items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(items))
	}
}

func TestAddToCartSnapshotsProduct(t *testing.T) {
	db := setupCartDB(t)
	cake := seedCartProduct(t, db, "Brownie", 150)
	r := cartRouter(db, "u1")

	w := do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: cake.ID, Quantity: 2})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	items := cartItems(t, r)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.ProductName != "Brownie" || item.Price != 150 || item.Quantity != 2 {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.ProductImage == "" {
		t.Error("expected product image snapshot")
	}
}

func TestAddToCartIncrementsExisting(t *testing.T) {
	db := setupCartDB(t)
	cake := seedCartProduct(t, db, "Brownie", 150)
	r := cartRouter(db, "u1")

	w := do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: cake.ID, Quantity: 2})
	if w.Code != http.StatusCreated {
		t.Fatalf("first add: expected 201, got %d", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: cake.ID, Quantity: 3})
	if w.Code != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	items := cartItems(t, r)
	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddToCartValidation(t *testing.T) {
	db := setupCartDB(t)
	cake := seedCartProduct(t, db, "Brownie", 150)
	r := cartRouter(db, "u1")

	w := do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: 999, Quantity: 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown product: expected 400, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"product_id": cake.ID, "quantity": 0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("zero quantity: expected 400, got %d", w.Code)
	}
}

func TestUpdateCartItem(t *testing.T) {
	db := setupCartDB(t)
	cake := seedCartProduct(t, db, "Brownie", 150)
	r := cartRouter(db, "u1")

	do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: cake.ID, Quantity: 2})

	w := do(t, r, http.MethodPut, fmt.Sprintf("/api/cart/update/%d", cake.ID), UpdateCartInput{Quantity: 7})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if items := cartItems(t, r); items[0].Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", items[0].Quantity)
	}

	w = do(t, r, http.MethodPut, "/api/cart/update/999", UpdateCartInput{Quantity: 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown item: expected 404, got %d", w.Code)
	}
}

func TestRemoveFromCart(t *testing.T) {
	db := setupCartDB(t)
	cake := seedCartProduct(t, db, "Brownie", 150)
	pastry := seedCartProduct(t, db, "Eclair", 120)
	r := cartRouter(db, "u1")

	do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: cake.ID, Quantity: 1})
	do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: pastry.ID, Quantity: 1})

	w := do(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", cake.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	items := cartItems(t, r)
	if len(items) != 1 || items[0].ProductID != pastry.ID {
		t.Errorf("expected only the pastry left, got %+v", items)
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", cake.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second remove: expected 404, got %d", w.Code)
	}
}

func TestClearCart(t *testing.T) {
	db := setupCartDB(t)
	cake := seedCartProduct(t, db, "Brownie", 150)
	r := cartRouter(db, "u1")

	do(t, r, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: cake.ID, Quantity: 2})

	w := do(t, r, http.MethodDelete, "/api/cart/clear", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if items := cartItems(t, r); len(items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(items))
	}

	// Clearing an absent cart is a no-op.
	other := cartRouter(db, "u2")
	w = do(t, other, http.MethodDelete, "/api/cart/clear", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for missing cart, got %d", w.Code)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	db := setupCartDB(t)
	cake := seedCartProduct(t, db, "Brownie", 150)

	first := cartRouter(db, "u1")
	second := cartRouter(db, "u2")

	do(t, first, http.MethodPost, "/api/cart/add", AddToCartInput{ProductID: cake.ID, Quantity: 2})

	if items := cartItems(t, second); len(items) != 0 {
		t.Errorf("u2 must not see u1's cart, got %d items", len(items))
	}
}
