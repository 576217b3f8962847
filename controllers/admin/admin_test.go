package adminController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/graphuraprojects/Bakery/middleware"
	"github.com/graphuraprojects/Bakery/models"
	"github.com/graphuraprojects/Bakery/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.User{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

// adminRouter mirrors the production wiring: the real auth middleware sits in
// front of the protected handlers.
func adminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/admin")
	grp.POST("/super-admin/register", RegisterSuperAdmin(db))
	grp.POST("/login", AdminLogin(db))

	authed := grp.Group("", middleware.AdminAuth(db))
	authed.GET("/users", GetUsers(db))
	authed.PATCH("/user/block/:id", BlockUnblockUser(db))
	authed.DELETE("/user/:id", DeleteUser(db))

	super := authed.Group("", middleware.RequireSuperAdmin())
	super.POST("/create", CreateAdmin(db))
	super.GET("/admins", GetAdmins(db))
	super.DELETE("/:id", DeleteAdmin(db))
	return r
}

func request(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// bootstrapSuperAdmin registers the first super-admin and returns its token.
func bootstrapSuperAdmin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := request(t, r, http.MethodPost, "/api/admin/super-admin/register", "", AdminCredentials{
		Name: "Root", Email: "root@bakery.com", Password: "super-secret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("bootstrap: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.Token
}

func TestSuperAdminBootstrapOnlyOnce(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupAdminDB(t)
	r := adminRouter(db)
	bootstrapSuperAdmin(t, r)

	w := request(t, r, http.MethodPost, "/api/admin/super-admin/register", "", AdminCredentials{
		Name: "Another", Email: "other@bakery.com", Password: "super-secret",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("second bootstrap: expected 400, got %d", w.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupAdminDB(t)
	r := adminRouter(db)
	bootstrapSuperAdmin(t, r)

	w := request(t, r, http.MethodPost, "/api/admin/login", "", AdminCredentials{
		Email: "root@bakery.com", Password: "super-secret",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = request(t, r, http.MethodPost, "/api/admin/login", "", AdminCredentials{
		Email: "root@bakery.com", Password: "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", w.Code)
	}

	w = request(t, r, http.MethodPost, "/api/admin/login", "", AdminCredentials{
		Email: "nobody@bakery.com", Password: "super-secret",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown admin: expected 404, got %d", w.Code)
	}
}

func TestCreateAdminRequiresSuperAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupAdminDB(t)
	r := adminRouter(db)
	superToken := bootstrapSuperAdmin(t, r)

	w := request(t, r, http.MethodPost, "/api/admin/create", superToken, AdminCredentials{
		Name: "Staff", Email: "staff@bakery.com", Password: "staff-pass",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create admin: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// The new regular admin logs in but cannot mint further admins.
	w = request(t, r, http.MethodPost, "/api/admin/login", "", AdminCredentials{
		Email: "staff@bakery.com", Password: "staff-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("staff login: expected 200, got %d", w.Code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	w = request(t, r, http.MethodPost, "/api/admin/create", resp.Token, AdminCredentials{
		Name: "Rogue", Email: "rogue@bakery.com", Password: "rogue-pass",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("staff creating admin: expected 403, got %d", w.Code)
	}

	// No token at all.
	w = request(t, r, http.MethodPost, "/api/admin/create", "", AdminCredentials{
		Name: "Rogue", Email: "rogue@bakery.com", Password: "rogue-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated: expected 401, got %d", w.Code)
	}
}

func TestRoleIsReDerivedFromDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupAdminDB(t)
	r := adminRouter(db)
	bootstrapSuperAdmin(t, r)

	// A token whose claims say super-admin must not grant access when the
	// persisted record is a regular admin.
	hashed, _ := utils.HashPassword("staff-pass")
	staff := models.Admin{ID: "staff-1", Email: "staff@bakery.com", Password: hashed, Role: models.RoleAdmin}
	db.Create(&staff)

	forged, err := utils.GenerateAdminToken(staff.ID, string(models.RoleSuperAdmin))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	w := request(t, r, http.MethodGet, "/api/admin/admins", forged, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("forged role claim: expected 403, got %d", w.Code)
	}
}

func TestDeleteAdminGuards(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupAdminDB(t)
	r := adminRouter(db)
	superToken := bootstrapSuperAdmin(t, r)

	var root models.Admin
	db.Where("email = ?", "root@bakery.com").First(&root)

	// Self deletion is blocked.
	w := request(t, r, http.MethodDelete, "/api/admin/"+root.ID, superToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("self delete: expected 400, got %d", w.Code)
	}

	// Peer super-admins are untouchable.
	hashed, _ := utils.HashPassword("x")
	peer := models.Admin{ID: "peer-1", Email: "peer@bakery.com", Password: hashed, Role: models.RoleSuperAdmin}
	db.Create(&peer)
	w = request(t, r, http.MethodDelete, "/api/admin/peer-1", superToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("delete super admin: expected 400, got %d", w.Code)
	}

	// A regular admin can be removed.
	staff := models.Admin{ID: "staff-1", Email: "staff@bakery.com", Password: hashed, Role: models.RoleAdmin}
	db.Create(&staff)
	w = request(t, r, http.MethodDelete, "/api/admin/staff-1", superToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete staff: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = request(t, r, http.MethodDelete, "/api/admin/ghost", superToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete unknown: expected 404, got %d", w.Code)
	}
}

func TestBlockUnblockUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupAdminDB(t)
	r := adminRouter(db)
	superToken := bootstrapSuperAdmin(t, r)

	db.Create(&models.User{ID: "u1", Email: "asha@test.com", Username: "asha", Password: "x"})

	w := request(t, r, http.MethodPatch, "/api/admin/user/block/u1", superToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("block: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var user models.User
	db.First(&user, "id = ?", "u1")
	if !user.Blocked {
		t.Error("user should be blocked after first toggle")
	}

	w = request(t, r, http.MethodPatch, "/api/admin/user/block/u1", superToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unblock: expected 200, got %d", w.Code)
	}
	db.First(&user, "id = ?", "u1")
	if user.Blocked {
		t.Error("user should be unblocked after second toggle")
	}

	w = request(t, r, http.MethodPatch, "/api/admin/user/block/ghost", superToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown user: expected 404, got %d", w.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupAdminDB(t)
	r := adminRouter(db)
	superToken := bootstrapSuperAdmin(t, r)

	db.Create(&models.User{ID: "u1", Email: "asha@test.com", Username: "asha", Password: "x"})

	w := request(t, r, http.MethodDelete, "/api/admin/user/u1", superToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = request(t, r, http.MethodDelete, "/api/admin/user/u1", superToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}
